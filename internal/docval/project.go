package docval

import (
	"math"

	"github.com/figlift/figlift/internal/kiwi"
)

// EnumTypeKey and EnumValueKey are the field names an enum value projects
// under. Downstream simplification passes match on these.
const (
	EnumTypeKey  = "__enum__"
	EnumValueKey = "value"
)

// Project maps a tagged value to its JSON-like projection. Total: every
// tagged variant has a defined projection and no error is possible.
//
// Representation choices fixed here:
//   - NaN and ±Inf project to Null. This deliberately loses information, but
//     it never masquerades as the literal number 0: a Null in the output is
//     always distinguishable from Number(0).
//   - 64-bit integers project to the nearest float64. Values beyond 2^53
//     lose precision; the source format does not use them for identifiers
//     that must survive exactly (GUIDs arrive as separate u64 fields well
//     inside the exact range in practice).
//   - Enums become {"__enum__": type, "value": variant} so no enum semantics
//     are discarded at this layer.
//   - An object's declared type name is not emitted into its field mapping.
func Project(v kiwi.TaggedValue) Value {
	switch val := v.(type) {
	case kiwi.Bool:
		return Bool(val)
	case kiwi.Byte:
		return Number(val)
	case kiwi.Int:
		return Number(val)
	case kiwi.Uint:
		return Number(val)
	case kiwi.Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Null{}
		}
		return Number(f)
	case kiwi.String:
		return String(val)
	case kiwi.Int64:
		return Number(val)
	case kiwi.Uint64:
		return Number(val)
	case kiwi.Array:
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = Project(elem)
		}
		return arr
	case kiwi.Enum:
		obj := NewObject()
		obj.Set(EnumTypeKey, String(val.Type))
		obj.Set(EnumValueKey, String(val.Variant))
		return obj
	case kiwi.Object:
		obj := NewObject()
		for _, f := range val.Fields {
			obj.Set(f.Name, Project(f.Value))
		}
		return obj
	default:
		// The TaggedValue interface is sealed; an unknown variant means kiwi
		// grew one without a projection. Fail loudly in development.
		panic("docval: unhandled kiwi.TaggedValue variant")
	}
}
