package quill

import "reflect"

// valueKind is the shape a runtime value renders as.
type valueKind int

const (
	kindNull valueKind = iota
	kindScalar
	kindSequence
	kindRecord
)

// classify categorizes an unwrapped (non-pointer, non-interface) value.
// Rules, in order: designated leaf types are scalars; slices and arrays
// are sequences ([]byte excepted, it reads as text); structs and maps
// are records; anything left (chan, func, complex, ...) is an opaque
// scalar rendered through the text sniffer.
func (s *Serializer) classify(v reflect.Value) valueKind {
	if !v.IsValid() {
		return kindNull
	}
	t := v.Type()
	if t == timeType || t == durationType {
		return kindScalar
	}
	if _, ok := s.leafTypes[t]; ok {
		return kindScalar
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return kindScalar
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return kindScalar
		}
		return kindSequence
	case reflect.Array:
		return kindSequence
	case reflect.Struct, reflect.Map:
		return kindRecord
	default:
		return kindScalar
	}
}

// scalarElement reports whether a sequence of this element type renders
// in the flat brace-list form. Scalar element types qualify, as do
// sequences of such, matching the legacy value-collection layout.
func scalarElement(t reflect.Type) bool {
	return scalarElementSeen(t, nil)
}

// scalarElementSeen tracks the container types already unwrapped:
// self-referential types like `type loop []loop` never bottom out in a
// scalar, so a revisited type is not one.
func scalarElementSeen(t reflect.Type, seen map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	case reflect.Struct:
		return t == timeType
	case reflect.Pointer, reflect.Slice, reflect.Array:
		if seen[t] {
			return false
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true
		return scalarElementSeen(t.Elem(), seen)
	default:
		return false
	}
}

// unwrap dereferences interfaces and pointers down to the concrete
// value, collecting the identities the cycle guard tracks (pointers,
// and the referents of maps and slices). The bool result reports a nil
// encountered at any layer.
func (s *Serializer) unwrap(v reflect.Value) (reflect.Value, []uintptr, bool) {
	var ids []uintptr
	for {
		if !v.IsValid() {
			return v, nil, true
		}
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return v, nil, true
			}
			v = v.Elem()
		case reflect.Pointer:
			if v.IsNil() {
				return v, nil, true
			}
			ids = append(ids, v.Pointer())
			v = v.Elem()
		case reflect.Map, reflect.Slice:
			if v.IsNil() {
				return v, nil, true
			}
			ids = append(ids, v.Pointer())
			return v, ids, false
		default:
			return v, ids, false
		}
	}
}
