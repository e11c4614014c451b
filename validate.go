package quill

import (
	"context"
	"errors"
	"reflect"

	gojson "github.com/goccy/go-json"
)

// checkOutput is the diagnostic validator: it parses the produced text
// as JSON and logs a structured warning when it is malformed. Only
// record and sequence roots are checked; the returned value is never
// altered.
//
// Malformed output is expected in places: verbatim string quoting and
// the legacy brace-list form both diverge from strict JSON. The
// warning is advisory, not an error.
func (s *Serializer) checkOutput(root reflect.Value, out string) {
	switch s.classify(root) {
	case kindRecord, kindSequence:
	default:
		return
	}
	if gojson.Valid([]byte(out)) {
		return
	}

	var parsed any
	err := gojson.Unmarshal([]byte(out), &parsed)
	if err == nil {
		err = errors.New("output rejected by validity check")
	}

	s.logger.Warn().
		Str("type", root.Type().String()).
		Str("output", out).
		Err(err).
		Msg("serialized output is not well-formed JSON")
	emitOutputMalformed(context.Background(), root.Type().String(), len(out), err)
}
