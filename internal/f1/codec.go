package f1

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sync"
)

// Codec encodes and decodes one packet type at a fixed wire size.
type Codec interface {
	// Decode parses a full datagram, header included. The buffer must hold
	// at least Size bytes; no fields are consumed from a short buffer.
	Decode(data []byte) (Packet, error)
	// Encode serialises a packet back to its exact wire form.
	Encode(p Packet) ([]byte, error)
	// Size reports the wire size of the packet in bytes.
	Size() int
}

// fieldKind classifies how a struct field is laid out on the wire.
type fieldKind int

const (
	kindUint8 fieldKind = iota
	kindInt8
	kindUint16
	kindInt16
	kindUint32
	kindUint64
	kindFloat32
	kindFloat64
	kindName   // DriverName, a fixed run of raw bytes
	kindRecord // nested struct
	kindArray  // fixed array of scalars or records
)

// fieldDef is one wire field of a schema, in declaration order.
type fieldDef struct {
	name  string // json tag, used by the formatter
	index int    // struct field index
	kind  fieldKind
	size  int // wire size of the whole field

	// array fields
	count    int
	elemKind fieldKind
	elemSize int

	// record fields and record arrays
	sub *schema
}

// schema is the precomputed wire layout of one struct type.
type schema struct {
	typ    reflect.Type
	fields []fieldDef
	size   int
}

var (
	schemaMu    sync.Mutex
	schemaCache = map[reflect.Type]*schema{}

	nameType = reflect.TypeOf(DriverName{})
)

func scalarKind(t reflect.Type) (fieldKind, int, bool) {
	switch t.Kind() {
	case reflect.Uint8:
		return kindUint8, 1, true
	case reflect.Int8:
		return kindInt8, 1, true
	case reflect.Uint16:
		return kindUint16, 2, true
	case reflect.Int16:
		return kindInt16, 2, true
	case reflect.Uint32:
		return kindUint32, 4, true
	case reflect.Uint64:
		return kindUint64, 8, true
	case reflect.Float32:
		return kindFloat32, 4, true
	case reflect.Float64:
		return kindFloat64, 8, true
	}
	return 0, 0, false
}

// schemaFor builds (or returns the cached) wire schema for a struct type.
// Schemas for all packet types are built once at init via the registry, so
// lookups on the hot path never take the build branch.
func schemaFor(t reflect.Type) *schema {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	return schemaForLocked(t)
}

func schemaForLocked(t reflect.Type) *schema {
	if s, ok := schemaCache[t]; ok {
		return s
	}
	s := &schema{typ: t}
	schemaCache[t] = s
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		fd := fieldDef{name: tag, index: i}
		ft := f.Type
		switch {
		case ft == nameType:
			fd.kind = kindName
			fd.size = NameLength
		case ft.Kind() == reflect.Struct:
			fd.kind = kindRecord
			fd.sub = schemaForLocked(ft)
			fd.size = fd.sub.size
		case ft.Kind() == reflect.Array:
			fd.kind = kindArray
			fd.count = ft.Len()
			et := ft.Elem()
			if et.Kind() == reflect.Struct {
				fd.elemKind = kindRecord
				fd.sub = schemaForLocked(et)
				fd.elemSize = fd.sub.size
			} else {
				k, sz, ok := scalarKind(et)
				if !ok {
					panic(fmt.Sprintf("f1: unsupported array element %s in %s.%s", et, t.Name(), f.Name))
				}
				fd.elemKind = k
				fd.elemSize = sz
			}
			fd.size = fd.count * fd.elemSize
		default:
			k, sz, ok := scalarKind(ft)
			if !ok {
				panic(fmt.Sprintf("f1: unsupported field type %s in %s.%s", ft, t.Name(), f.Name))
			}
			fd.kind = k
			fd.size = sz
		}
		s.fields = append(s.fields, fd)
		s.size += fd.size
	}
	return s
}

func decodeScalar(v reflect.Value, k fieldKind, data []byte) {
	switch k {
	case kindUint8:
		v.SetUint(uint64(data[0]))
	case kindInt8:
		v.SetInt(int64(int8(data[0])))
	case kindUint16:
		v.SetUint(uint64(binary.LittleEndian.Uint16(data)))
	case kindInt16:
		v.SetInt(int64(int16(binary.LittleEndian.Uint16(data))))
	case kindUint32:
		v.SetUint(uint64(binary.LittleEndian.Uint32(data)))
	case kindUint64:
		v.SetUint(binary.LittleEndian.Uint64(data))
	case kindFloat32:
		v.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(data))))
	case kindFloat64:
		v.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(data)))
	}
}

func encodeScalar(v reflect.Value, k fieldKind, data []byte) {
	switch k {
	case kindUint8:
		data[0] = uint8(v.Uint())
	case kindInt8:
		data[0] = uint8(int8(v.Int()))
	case kindUint16:
		binary.LittleEndian.PutUint16(data, uint16(v.Uint()))
	case kindInt16:
		binary.LittleEndian.PutUint16(data, uint16(int16(v.Int())))
	case kindUint32:
		binary.LittleEndian.PutUint32(data, uint32(v.Uint()))
	case kindUint64:
		binary.LittleEndian.PutUint64(data, v.Uint())
	case kindFloat32:
		binary.LittleEndian.PutUint32(data, math.Float32bits(float32(v.Float())))
	case kindFloat64:
		binary.LittleEndian.PutUint64(data, math.Float64bits(v.Float()))
	}
}

// decodeRecord fills v (an addressable struct value) from data, which must
// hold at least s.size bytes. It returns the number of bytes consumed.
func decodeRecord(s *schema, v reflect.Value, data []byte) int {
	off := 0
	for _, fd := range s.fields {
		fv := v.Field(fd.index)
		switch fd.kind {
		case kindName:
			reflect.Copy(fv, reflect.ValueOf(data[off:off+fd.size]))
		case kindRecord:
			decodeRecord(fd.sub, fv, data[off:])
		case kindArray:
			for i := 0; i < fd.count; i++ {
				ev := fv.Index(i)
				base := off + i*fd.elemSize
				if fd.elemKind == kindRecord {
					decodeRecord(fd.sub, ev, data[base:])
				} else {
					decodeScalar(ev, fd.elemKind, data[base:])
				}
			}
		default:
			decodeScalar(fv, fd.kind, data[off:])
		}
		off += fd.size
	}
	return off
}

// encodeRecord writes v into data, which must hold at least s.size bytes.
func encodeRecord(s *schema, v reflect.Value, data []byte) int {
	off := 0
	for _, fd := range s.fields {
		fv := v.Field(fd.index)
		switch fd.kind {
		case kindName:
			reflect.Copy(reflect.ValueOf(data[off:off+fd.size]), fv)
		case kindRecord:
			encodeRecord(fd.sub, fv, data[off:])
		case kindArray:
			for i := 0; i < fd.count; i++ {
				ev := fv.Index(i)
				base := off + i*fd.elemSize
				if fd.elemKind == kindRecord {
					encodeRecord(fd.sub, ev, data[base:])
				} else {
					encodeScalar(ev, fd.elemKind, data[base:])
				}
			}
		default:
			encodeScalar(fv, fd.kind, data[off:])
		}
		off += fd.size
	}
	return off
}

// recordCodec is the schema-driven Codec shared by every packet type except
// the event packet, whose tail depends on the event code.
type recordCodec struct {
	s *schema
}

func newRecordCodec(prototype Packet) *recordCodec {
	t := reflect.TypeOf(prototype).Elem()
	return &recordCodec{s: schemaFor(t)}
}

func (c *recordCodec) Size() int { return c.s.size }

func (c *recordCodec) Decode(data []byte) (Packet, error) {
	if len(data) < c.s.size {
		return nil, fmt.Errorf("%w: %s needs %d bytes, have %d",
			ErrTruncatedBuffer, c.s.typ.Name(), c.s.size, len(data))
	}
	pv := reflect.New(c.s.typ)
	decodeRecord(c.s, pv.Elem(), data)
	return pv.Interface().(Packet), nil
}

func (c *recordCodec) Encode(p Packet) ([]byte, error) {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer || v.Elem().Type() != c.s.typ {
		return nil, fmt.Errorf("f1: codec for %s cannot encode %T", c.s.typ.Name(), p)
	}
	data := make([]byte, c.s.size)
	encodeRecord(c.s, v.Elem(), data)
	return data, nil
}
