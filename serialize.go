package quill

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Serialize renders v as JSON-shaped text. A nil root renders "{}".
// Serialize never panics or returns an error: any internal failure
// degrades the whole call to "".
func (s *Serializer) Serialize(v any) string {
	return s.SerializeIndent(v, "")
}

// SerializeIndent is Serialize with every structural line after the
// first prefixed by outerIndent, for embedding the output inside
// already-indented log text. outerIndent is ignored in Compact mode.
func (s *Serializer) SerializeIndent(v any, outerIndent string) (out string) {
	start := time.Now()
	ctx := context.Background()

	typeName := "nil"
	rv := reflect.ValueOf(v)
	if rv.IsValid() {
		typeName = rv.Type().String()
	}
	emitSerializeStart(ctx, typeName, s.mode.String())

	w := &walker{s: s, seen: make(map[uintptr]struct{})}
	var failure error
	defer func() {
		if r := recover(); r != nil {
			failure = fmt.Errorf("serialize %s: %v", typeName, r)
			out = ""
		}
		emitSerializeComplete(ctx, typeName, s.mode.String(), len(out), time.Since(start), w.masked, failure)
	}()

	root, _, isNil := s.unwrap(rv)
	if isNil {
		return "{}"
	}

	text, _ := w.value(rv, outerIndent)
	if w.err != nil {
		failure = w.err
		return ""
	}

	if s.validate {
		s.checkOutput(root, text)
	}
	return text
}

// walker holds the transient state of one top-level serialization:
// the ancestor identity set consulted by the cycle guard, the count of
// masked members, and the first configuration error encountered.
type walker struct {
	s      *Serializer
	seen   map[uintptr]struct{}
	masked int
	err    error
}

func (w *walker) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// value renders one value at the given indentation level. The bool
// result is false when the cycle guard suppresses the value: the
// caller omits it entirely, key included.
func (w *walker) value(v reflect.Value, indent string) (string, bool) {
	v, ids, isNil := w.s.unwrap(v)
	if isNil {
		return "null", true
	}
	for _, id := range ids {
		if _, ok := w.seen[id]; ok {
			return "", false
		}
	}

	switch w.s.classify(v) {
	case kindScalar:
		return w.s.formatScalar(v), true
	case kindSequence:
		return w.sequence(v, ids, indent), true
	case kindRecord:
		return w.record(v, ids, indent), true
	default:
		return "null", true
	}
}

// sequence renders a slice or array. Scalar element types use the flat
// brace-list form; composite element types render one full value per
// entry inside [ ... ].
func (w *walker) sequence(v reflect.Value, ids []uintptr, indent string) string {
	if v.Len() == 0 {
		return "[]"
	}
	if scalarElement(v.Type().Elem()) {
		return w.s.flatList(v)
	}

	w.push(ids)
	defer w.pop(ids)

	elems := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		el, ok := w.value(v.Index(i), indent+indentUnit)
		if !ok {
			continue
		}
		elems = append(elems, el)
	}
	if len(elems) == 0 {
		return "[]"
	}
	return w.s.assemble("[", "]", elems, indent)
}

// flatList renders a scalar-element collection in the legacy brace
// form, e.g. { 1, 2, 3 }. Nested scalar collections recurse into the
// same form.
func (s *Serializer) flatList(v reflect.Value) string {
	if v.Len() == 0 {
		return "[]"
	}

	elems := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		el, _, isNil := s.unwrap(v.Index(i))
		switch {
		case isNil:
			elems = append(elems, "null")
		case (el.Kind() == reflect.Slice || el.Kind() == reflect.Array) &&
			!(el.Kind() == reflect.Slice && el.Type().Elem().Kind() == reflect.Uint8):
			elems = append(elems, s.flatList(el))
		default:
			elems = append(elems, s.formatScalar(el))
		}
	}

	joined := strings.Join(elems, s.mode.comma())
	if s.mode == Compact {
		return "{" + joined + "}"
	}
	return "{ " + joined + " }"
}

// record renders a struct or map as a named set of fields.
func (w *walker) record(v reflect.Value, ids []uintptr, indent string) string {
	w.push(ids)
	defer w.pop(ids)

	if v.CanInterface() {
		if insp, ok := v.Interface().(Inspectable); ok {
			return w.inspected(insp, indent)
		}
	}
	if v.Kind() == reflect.Map {
		return w.mapRecord(v, indent)
	}

	plan := plansFor(v.Type())
	if len(plan.fields) == 0 {
		// No serializable members: fall back to the value's own text
		// form rather than an empty object.
		return fmt.Sprint(v.Interface())
	}

	pairs := make([]string, 0, len(plan.fields))
	for _, f := range plan.fields {
		fv := v.FieldByIndex(f.index)

		switch {
		case f.hasRedact:
			pairs = append(pairs, w.pair(f.name, quote(f.redact)))
			w.masked++
		case f.mask != "":
			masker, ok := w.s.maskers[f.mask]
			if !ok {
				w.fail(newConfigError(ErrMissingMasker, string(f.mask), plan.typeName+"."+f.name))
				return ""
			}
			raw, _, isNil := w.s.unwrap(fv)
			if isNil {
				pairs = append(pairs, w.pair(f.name, "null"))
			} else {
				pairs = append(pairs, w.pair(f.name, quote(masker.Mask(maskInput(raw)))))
			}
			w.masked++
		default:
			el, ok := w.value(fv, indent+indentUnit)
			if !ok {
				continue
			}
			pairs = append(pairs, w.pair(f.name, el))
		}
	}

	if len(pairs) == 0 {
		return "{}"
	}
	return w.s.assemble("{", "}", pairs, indent)
}

// inspected renders the pairs an Inspectable supplies, in the order
// given. Mask directives do not apply; the type already chose what to
// expose.
func (w *walker) inspected(insp Inspectable, indent string) string {
	fields := insp.Fields()
	pairs := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value == nil {
			pairs = append(pairs, w.pair(f.Name, "null"))
			continue
		}
		el, ok := w.value(reflect.ValueOf(f.Value), indent+indentUnit)
		if !ok {
			continue
		}
		pairs = append(pairs, w.pair(f.Name, el))
	}
	if len(pairs) == 0 {
		return "{}"
	}
	return w.s.assemble("{", "}", pairs, indent)
}

// mapRecord renders a map with keys sorted by their text form, keeping
// output deterministic. Distinct keys with the same text form (1 and
// "1" under an any key) each keep their entry.
func (w *walker) mapRecord(v reflect.Value, indent string) string {
	keys := v.MapKeys()
	type entry struct {
		name string
		key  reflect.Value
	}
	entries := make([]entry, len(keys))
	for i, k := range keys {
		entries[i] = entry{name: fmt.Sprint(k.Interface()), key: k}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})

	pairs := make([]string, 0, len(entries))
	for _, e := range entries {
		el, ok := w.value(v.MapIndex(e.key), indent+indentUnit)
		if !ok {
			continue
		}
		pairs = append(pairs, w.pair(e.name, el))
	}
	if len(pairs) == 0 {
		return "{}"
	}
	return w.s.assemble("{", "}", pairs, indent)
}

// pair renders one "name": value member.
func (w *walker) pair(name, value string) string {
	return quote(name) + w.s.mode.colon() + value
}

// assemble joins the members of a record or sequence between brackets.
// Separator placement is structural: the last member never carries one.
func (s *Serializer) assemble(opening, closing string, parts []string, indent string) string {
	if s.mode == Compact {
		return opening + strings.Join(parts, ",") + closing
	}
	inner := indent + indentUnit
	return opening + "\n" + inner + strings.Join(parts, ",\n"+inner) + "\n" + indent + closing
}

func (w *walker) push(ids []uintptr) {
	for _, id := range ids {
		w.seen[id] = struct{}{}
	}
}

func (w *walker) pop(ids []uintptr) {
	for _, id := range ids {
		delete(w.seen, id)
	}
}

// maskInput is the textual form of a member's value handed to a
// masking strategy.
func maskInput(v reflect.Value) string {
	switch {
	case v.Kind() == reflect.String:
		return v.String()
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		return string(v.Bytes())
	default:
		return fmt.Sprint(v.Interface())
	}
}
