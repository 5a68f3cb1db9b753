package f1

import (
	"encoding/json"
	"math"
	"reflect"
)

// The formatter is a presentation-only view over decoded values. It walks the
// declared field lists, not the byte layout, and never feeds back into the
// binary round trip: float rounding here is lossy on purpose.

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func formatValue(fd fieldDef, v reflect.Value) any {
	switch fd.kind {
	case kindName:
		return v.Interface().(DriverName).String()
	case kindRecord:
		return recordMapping(fd.sub, v)
	case kindArray:
		out := make([]any, fd.count)
		for i := 0; i < fd.count; i++ {
			out[i] = formatScalarOrRecord(fd, v.Index(i))
		}
		return out
	default:
		return formatScalar(fd.kind, v)
	}
}

func formatScalarOrRecord(fd fieldDef, ev reflect.Value) any {
	if fd.elemKind == kindRecord {
		return recordMapping(fd.sub, ev)
	}
	return formatScalar(fd.elemKind, ev)
}

func formatScalar(k fieldKind, v reflect.Value) any {
	switch k {
	case kindFloat32, kindFloat64:
		return round3(v.Float())
	case kindInt8, kindInt16:
		return v.Int()
	default:
		return v.Uint()
	}
}

func recordMapping(s *schema, v reflect.Value) map[string]any {
	m := make(map[string]any, len(s.fields))
	for _, fd := range s.fields {
		m[fd.name] = formatValue(fd, v.Field(fd.index))
	}
	return m
}

// RecordMapping formats any decoded record or sub-record as a generic nested
// mapping: floats rounded to 3 decimals, name fields as UTF-8 text truncated
// at the first NUL, arrays as ordered sequences, nested records as nested
// mappings. rec must be a struct or pointer to struct with wire field tags.
func RecordMapping(rec any) map[string]any {
	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return recordMapping(schemaFor(v.Type()), v)
}

// ToMapping formats a decoded packet as a generic nested mapping. The event
// packet renders its details as the resolved shape only.
func ToMapping(p Packet) map[string]any {
	if ep, ok := p.(*EventPacket); ok {
		code := make([]any, EventCodeLength)
		for i, b := range ep.EventStringCode {
			code[i] = uint64(b)
		}
		m := map[string]any{
			"header":            RecordMapping(ep.Header),
			"event_string_code": code,
		}
		if ep.Details != nil {
			m["event_details"] = RecordMapping(ep.Details)
		}
		return m
	}
	return RecordMapping(p)
}

// ToText renders a decoded packet as canonical text: sorted keys, two-space
// indentation.
func ToText(p Packet) (string, error) {
	b, err := json.MarshalIndent(ToMapping(p), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
