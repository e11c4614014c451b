// Package quill renders arbitrary Go values as JSON-shaped text for log
// output.
//
// No type needs to implement a serialization contract: quill inspects a
// value's exported fields at runtime and produces deterministic, diffable
// text. Fields are emitted in name order regardless of declaration order,
// so the same shape always renders the same way.
//
// # Masking
//
// Sensitive fields are redacted during traversal via struct tags:
//
//	type Patient struct {
//	    Name     string
//	    SSN      string `log.mask:"ssn"`
//	    Password string `log.redact:"***"`
//	}
//
// log.mask names a masking strategy applied to the field's value
// (ssn, email, phone, card, ip, fingerprint are builtin; register more
// with WithMasker). log.redact replaces the value with the tag literal.
// Masked fields are never traversed; their raw values never reach the
// output, even transiently.
//
// # Usage
//
//	s := quill.New(quill.WithMode(quill.Compact))
//	logLine := s.Serialize(patient)
//
// Serialize never fails to the caller: a nil root renders "{}" and any
// internal error degrades the whole call to "".
//
// # Modes
//
// Pretty mode indents two spaces per level with a newline after each
// structural line; Compact mode emits no whitespace at all. The mode is
// fixed per Serializer at construction.
//
// # Output shape
//
// The output approximates JSON but is not a JSON encoder. Two deliberate
// divergences, kept for compatibility with existing log consumers:
//
//   - String content is quoted verbatim with no escaping. A value
//     containing a quote produces text that is not valid JSON.
//   - Collections of scalar element type render in the legacy brace form
//     { 1, 2, 3 }; only collections of composite elements use [ ... ].
//
// Enable WithValidation during development to have each produced record
// parsed back and a warning logged when it is not well-formed JSON.
package quill

import (
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// Field is one named value of an inspected record.
type Field struct {
	Name  string
	Value any
}

// Inspectable bypasses reflection-based member enumeration.
// Types implementing it supply their own ordered (name, value) pairs,
// which are rendered exactly as reflected members would be. The pairs
// are emitted in the order returned, not re-sorted.
//
// Implement Fields on the value receiver.
type Inspectable interface {
	Fields() []Field
}

// Serializer renders values as JSON-shaped text. It holds no mutable
// state after construction and is safe for concurrent use on
// independent value graphs.
type Serializer struct {
	mode      Mode
	maskers   map[MaskType]Masker
	leafTypes map[reflect.Type]struct{}
	logger    zerolog.Logger
	validate  bool
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithMode selects the output mode. The default is Pretty.
func WithMode(m Mode) Option {
	return func(s *Serializer) { s.mode = m }
}

// WithMasker registers a masking strategy under the given type,
// replacing any builtin of the same name.
func WithMasker(mt MaskType, m Masker) Option {
	return func(s *Serializer) { s.maskers[mt] = m }
}

// WithLeafType designates a type to be rendered as a single scalar
// token instead of being traversed. The value's text form is classified
// in order: number, boolean, timestamp, quoted text.
func WithLeafType(t reflect.Type) Option {
	return func(s *Serializer) { s.leafTypes[t] = struct{}{} }
}

// WithLogger sets the logger used for diagnostic warnings.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Serializer) { s.logger = logger }
}

// WithValidation enables the diagnostic output check: after serializing
// a record or sequence root, the produced text is parsed as JSON and a
// warning is logged if it is malformed. The returned text is never
// altered. Intended for development builds.
func WithValidation() Option {
	return func(s *Serializer) { s.validate = true }
}

// New creates a Serializer with builtin maskers and the given options.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		mode:      Pretty,
		maskers:   builtinMaskers(),
		leafTypes: make(map[reflect.Type]struct{}),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks that every log.mask directive reachable from v's type
// resolves to a registered masker. Serialize degrades to "" on an
// unresolvable directive; calling Validate at startup surfaces the
// configuration error instead.
func (s *Serializer) Validate(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}
	return s.validateType(rv.Type(), make(map[reflect.Type]bool))
}

func (s *Serializer) validateType(t reflect.Type, seen map[reflect.Type]bool) error {
	// Every container type is marked before unwrapping, so
	// self-referential types like `type loop []loop` terminate.
	for {
		if seen[t] {
			return nil
		}
		seen[t] = true
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
			continue
		}
		break
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return nil
	}

	plan := plansFor(t)
	for _, f := range plan.fields {
		switch {
		case f.mask != "":
			if _, ok := s.maskers[f.mask]; !ok {
				return newConfigError(ErrMissingMasker, string(f.mask), plan.typeName+"."+f.name)
			}
		case f.hasRedact:
			// Literal replacement needs no strategy.
		default:
			if err := s.validateType(f.typ, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)
