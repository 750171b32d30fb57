package docval

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Marshal serializes a value to JSON, preserving object insertion order.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshal(&buf, v, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalCanonical serializes a value to canonical JSON: object keys sorted
// byte-wise, strings NFC-normalized, no HTML escaping. Used for content
// digests; not the user-facing document serialization.
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshal(&buf, v, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshal(buf *bytes.Buffer, v Value, canonical bool) error {
	switch val := v.(type) {
	case nil:
		// A nil Value is a construction bug, not data.
		return fmt.Errorf("cannot marshal nil Value (use Null)")
	case Null:
		buf.WriteString("null")
		return nil
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Number:
		return marshalNumber(buf, float64(val))
	case String:
		marshalString(buf, string(val), canonical)
		return nil
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshal(buf, elem, canonical); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case *Object:
		return marshalObject(buf, val, canonical)
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
}

func marshalObject(buf *bytes.Buffer, obj *Object, canonical bool) error {
	keys := obj.keys
	if canonical {
		keys = append([]string(nil), obj.keys...)
		sort.Strings(keys)
	}

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		marshalString(buf, k, canonical)
		buf.WriteByte(':')
		if err := marshal(buf, obj.fields[k], canonical); err != nil {
			return fmt.Errorf("object[%q]: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// marshalNumber writes a finite float64 as a JSON number. Integral values
// print without a fractional part; -0 keeps its sign so output round-trips.
func marshalNumber(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		// Projection nulls these before a Number exists; hitting this means a
		// caller bypassed Project.
		return fmt.Errorf("non-finite number %v cannot be marshaled", f)
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// marshalString writes a JSON string. Unlike encoding/json it does not
// escape HTML characters; < > & pass through literally.
func marshalString(buf *bytes.Buffer, s string, canonical bool) {
	if canonical {
		s = norm.NFC.String(s)
	}
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				// Invalid UTF-8 input bytes surface as the replacement rune.
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
