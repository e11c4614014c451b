package quill

import (
	"reflect"
	"sort"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register masking tags with sentinel
	sentinel.Tag("log.mask")
	sentinel.Tag("log.redact")
}

// memberPlan is the ordered set of serializable members of a record
// type. Plans are built once per type and cached in the registry.
type memberPlan struct {
	typeName string
	fields   []memberField
}

// memberField describes one exported field and how to render it.
type memberField struct {
	name      string
	index     []int        // reflect.Value.FieldByIndex access path
	typ       reflect.Type // declared field type
	mask      MaskType     // masking strategy, empty for normal traversal
	redact    string       // literal replacement value
	hasRedact bool
}

// buildPlan scans a struct type into a member plan. Only exported
// fields participate; they are sorted by name so output is
// deterministic regardless of declaration order.
func buildPlan(rt reflect.Type) *memberPlan {
	meta := scanType(rt)

	plan := &memberPlan{typeName: meta.TypeName}
	if plan.typeName == "" {
		plan.typeName = rt.String()
	}

	for _, fm := range meta.Fields {
		f := memberField{
			name:  fm.Name,
			index: fm.Index,
			typ:   fm.ReflectType,
		}
		if val, ok := fm.Tags["log.mask"]; ok {
			f.mask = MaskType(val)
		}
		if val, ok := fm.Tags["log.redact"]; ok {
			f.redact = val
			f.hasRedact = true
		}
		plan.fields = append(plan.fields, f)
	}

	sort.Slice(plan.fields, func(i, j int) bool {
		return plan.fields[i].name < plan.fields[j].name
	})

	return plan
}

// scanType returns sentinel metadata for a struct type, consulting
// sentinel's registry first and falling back to direct reflection.
func scanType(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseLogTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return meta
}

// parseLogTags extracts quill's tags from a struct tag.
func parseLogTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{"log.mask", "log.redact"} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}
