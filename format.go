package quill

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// timestampLayout is ISO-8601 with millisecond precision; the trailing
// Z comes from formatting in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// formatScalar renders a single leaf value with the quoting its kind
// requires: numbers and booleans bare, timestamps quoted ISO-8601,
// strings quoted verbatim. Types with no explicit rule are rendered
// from their text form through sniff.
//
// Quoted content is emitted as-is: embedded quotes and control
// characters are not escaped.
func (s *Serializer) formatScalar(v reflect.Value) string {
	t := v.Type()
	switch t {
	case timeType:
		return quote(formatTimestamp(v.Interface().(time.Time)))
	case durationType:
		return quote(v.Interface().(time.Duration).String())
	}
	if _, ok := s.leafTypes[t]; ok {
		return sniff(fmt.Sprint(v.Interface()))
	}

	switch t.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.String:
		// Never sniffed: a string whose content happens to parse as a
		// number stays quoted.
		return quote(v.String())
	case reflect.Slice:
		return quote(string(v.Bytes()))
	default:
		return sniff(fmt.Sprint(v.Interface()))
	}
}

// sniff classifies an opaque value's text form with an explicit
// precedence: number, then boolean, then timestamp, then quoted text.
func sniff(text string) string {
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return text
	}
	if b, err := strconv.ParseBool(text); err == nil {
		return strconv.FormatBool(b)
	}
	if ts, err := time.Parse(time.RFC3339, text); err == nil {
		return quote(formatTimestamp(ts))
	}
	return quote(text)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func quote(text string) string {
	return `"` + text + `"`
}
