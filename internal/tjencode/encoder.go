// Package tjencode is the type-directed encoder (spec §4.6-4.7): a
// dispatcher that selects a per-type serializer for each Go value and
// writes it into a pooled internal/tjbuf.Buffer. Reference-cycle
// detection and the fallback re-dispatch loop replace the teacher's
// recursion-depth counter (lattice-substrate json-canon's
// jcstoken.parser.pushDepth/popDepth), generalized from a decode-time
// nesting bound to an encode-time visited-pointer stack, because Go
// maps and slices can alias in ways a freshly-parsed JSON tree cannot.
package tjencode

import (
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/turbojson/turbojson/internal/tjbuf"
	"github.com/turbojson/turbojson/internal/tjnum"
	"github.com/turbojson/turbojson/internal/tjoptions"
	"github.com/turbojson/turbojson/internal/tjvalue"
	"github.com/turbojson/turbojson/tjerr"
)

// Fallback is invoked once per value of unknown type; its return value is
// re-dispatched (spec §4.6, §9).
type Fallback func(v any) (any, error)

// maxFallbackDepth bounds fallback re-dispatch recursion (spec §4.6: "≥5").
const maxFallbackDepth = 6

type state struct {
	opt           tjoptions.Option
	fallback      Fallback
	fallbackDepth int
	visiting      map[any]struct{}
}

// Encode serializes v per spec §4.6-4.7 under opt, using fallback for any
// type with no native serializer. It returns the UTF-8 JSON bytes, or a
// *tjerr.EncodeError.
func Encode(v any, fallback Fallback, opt tjoptions.Option) ([]byte, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	buf := tjbuf.Get()
	defer tjbuf.Put(buf)

	st := &state{opt: opt, fallback: fallback, visiting: make(map[any]struct{})}
	if err := st.encodeValue(buf, v); err != nil {
		return nil, err
	}

	if opt.Has(tjoptions.Indent2) {
		reindented, err := indent2(buf.Bytes())
		if err != nil {
			return nil, err
		}
		buf2 := tjbuf.Get()
		defer tjbuf.Put(buf2)
		buf2.Write(reindented)
		buf = buf2
	}

	if opt.Has(tjoptions.AppendNewline) {
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// encodeValue is the hottest-first type dispatch (spec §9): string, map,
// slice, int, float, bool, nil first; extension types after.
func (st *state) encodeValue(buf *tjbuf.Buffer, v any) error {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case string:
		return encodeString(buf, x)
	case map[string]any:
		return st.encodeStringMap(buf, x)
	case []any:
		return st.encodeAnySlice(buf, x)
	case int:
		return st.encodeInt64(buf, int64(x))
	case int8:
		return st.encodeInt64(buf, int64(x))
	case int16:
		return st.encodeInt64(buf, int64(x))
	case int32:
		return st.encodeInt64(buf, int64(x))
	case int64:
		return st.encodeInt64(buf, x)
	case uint:
		return st.encodeUint64(buf, uint64(x))
	case uint8:
		return st.encodeUint64(buf, uint64(x))
	case uint16:
		return st.encodeUint64(buf, uint64(x))
	case uint32:
		return st.encodeUint64(buf, uint64(x))
	case uint64:
		return st.encodeUint64(buf, x)
	case float32:
		return st.encodeFloat(buf, float64(x))
	case float64:
		return st.encodeFloat(buf, x)
	case bool:
		encodeBool(buf, x)
		return nil
	case tjvalue.Date:
		return encodeDate(buf, x)
	case tjvalue.Time:
		return encodeTime(buf, x)
	case tjvalue.Datetime:
		return st.encodeDatetime(buf, x)
	case tjvalue.UUID:
		encodeUUID(buf, x)
		return nil
	case tjvalue.Record:
		return st.encodeRecord(buf, x)
	case tjvalue.Fragment:
		buf.Write([]byte(x))
		return nil
	case *tjvalue.Value:
		return st.encodeTreeValue(buf, x)
	case tjvalue.Value:
		return st.encodeTreeValue(buf, &x)
	case time.Time:
		return st.encodeDatetime(buf, tjvalue.NewDatetime(x))
	default:
		return st.encodeReflect(buf, v)
	}
}

// encodeReflect handles everything not matched by the exact-type switch
// above: named/"subclass" string, integer, slice, and map types, plus
// genuinely unsupported types routed to the fallback (spec §4.6).
func (st *state) encodeReflect(buf *tjbuf.Buffer, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		buf.WriteString("null")
		return nil
	}

	switch rv.Kind() {
	case reflect.String:
		return st.encodeSubclass(buf, v, func() error {
			return encodeString(buf, rv.String())
		})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return st.encodeSubclass(buf, v, func() error {
			return st.encodeInt64(buf, rv.Int())
		})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return st.encodeSubclass(buf, v, func() error {
			return st.encodeUint64(buf, rv.Uint())
		})
	case reflect.Float32, reflect.Float64:
		// spec §4.6: subclasses of float are NEVER auto-serialized.
		return st.invokeFallback(buf, v)
	case reflect.Bool:
		return st.encodeSubclass(buf, v, func() error {
			encodeBool(buf, rv.Bool())
			return nil
		})
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Binary blobs are out of scope (spec §3: "does NOT accept
			// binary blobs"); only the fallback can handle them.
			return st.invokeFallback(buf, v)
		}
		return st.encodeSubclass(buf, v, func() error {
			return st.encodeSliceReflect(buf, rv)
		})
	case reflect.Array:
		// spec §4.6: subclasses of tuple are NEVER auto-serialized.
		return st.invokeFallback(buf, v)
	case reflect.Map:
		return st.encodeSubclass(buf, v, func() error {
			return st.encodeMapReflect(buf, rv)
		})
	case reflect.Ptr:
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return st.encodeValue(buf, rv.Elem().Interface())
	default:
		return st.invokeFallback(buf, v)
	}
}

// encodeSubclass applies spec §4.6's passthrough rule: without
// PASSTHROUGH_SUBCLASS, a named type whose underlying kind is
// string/int/slice/map is serialized by the parent serializer (native);
// with it, the same types are routed to the fallback instead.
func (st *state) encodeSubclass(buf *tjbuf.Buffer, v any, native func() error) error {
	if st.opt.Has(tjoptions.PassthroughSubclass) {
		return st.invokeFallback(buf, v)
	}
	return native()
}

func (st *state) invokeFallback(buf *tjbuf.Buffer, v any) error {
	if st.fallback == nil {
		return tjerr.NewEncodeError(tjerr.UnsupportedType, typeName(v))
	}
	if st.fallbackDepth >= maxFallbackDepth {
		return tjerr.NewEncodeError(tjerr.FallbackRecursion, "fallback recursion limit exceeded")
	}
	st.fallbackDepth++
	defer func() { st.fallbackDepth-- }()

	replacement, err := st.fallback(v)
	if err != nil {
		return tjerr.WrapEncodeError(tjerr.UnsupportedType, "fallback returned an error", err)
	}
	return st.encodeValue(buf, replacement)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func encodeBool(buf *tjbuf.Buffer, b bool) {
	if b {
		buf.WriteString("true")
		return
	}
	buf.WriteString("false")
}

func (st *state) encodeInt64(buf *tjbuf.Buffer, v int64) error {
	if st.opt.Has(tjoptions.StrictInteger) && (v > tjnum.MaxSafeInteger || v < tjnum.MinSafeInteger) {
		return tjerr.NewEncodeError(tjerr.StrictIntegerRange, "integer exceeds ±(2^53-1) under STRICT_INTEGER")
	}
	buf.WriteString(tjnum.FormatInt(v))
	return nil
}

func (st *state) encodeUint64(buf *tjbuf.Buffer, v uint64) error {
	if st.opt.Has(tjoptions.StrictInteger) && v > uint64(tjnum.MaxSafeInteger) {
		return tjerr.NewEncodeError(tjerr.StrictIntegerRange, "integer exceeds ±(2^53-1) under STRICT_INTEGER")
	}
	buf.WriteString(tjnum.FormatUint(v))
	return nil
}

func (st *state) encodeFloat(buf *tjbuf.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return nil
	}
	s, err := tjnum.FormatFloat(f)
	if err != nil {
		buf.WriteString("null")
		return nil
	}
	buf.WriteString(s)
	return nil
}

func (st *state) encodeAnySlice(buf *tjbuf.Buffer, elems []any) error {
	if err := st.enterContainer(elems); err != nil {
		return err
	}
	defer st.leaveContainer(elems)

	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := st.encodeValue(buf, e); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func (st *state) encodeSliceReflect(buf *tjbuf.Buffer, rv reflect.Value) error {
	if err := st.enterContainer(rv.Interface()); err != nil {
		return err
	}
	defer st.leaveContainer(rv.Interface())

	buf.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := st.encodeValue(buf, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func (st *state) encodeStringMap(buf *tjbuf.Buffer, m map[string]any) error {
	if err := st.enterContainer(m); err != nil {
		return err
	}
	defer st.leaveContainer(m)

	type kv struct {
		key string
		val any
	}
	entries := make([]kv, 0, len(m))
	for k, v := range m {
		entries = append(entries, kv{k, v})
	}
	if st.opt.Has(tjoptions.SortKeys) {
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}

	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, e.key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := st.encodeValue(buf, e.val); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// encodeMapReflect handles any map type, including non-string keys under
// NON_STR_KEYS (spec §4.7).
func (st *state) encodeMapReflect(buf *tjbuf.Buffer, rv reflect.Value) error {
	if err := st.enterContainer(rv.Interface()); err != nil {
		return err
	}
	defer st.leaveContainer(rv.Interface())

	keyType := rv.Type().Key()
	if keyType.Kind() != reflect.String && !st.opt.Has(tjoptions.NonStrKeys) {
		return tjerr.NewEncodeError(tjerr.NonStringKey, "non-string map key without NON_STR_KEYS")
	}

	type kv struct {
		key string
		val reflect.Value
	}
	iter := rv.MapRange()
	entries := make([]kv, 0, rv.Len())
	for iter.Next() {
		k, err := st.formatMapKey(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, kv{k, iter.Value()})
	}
	if st.opt.Has(tjoptions.SortKeys) {
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	}

	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(buf, e.key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := st.encodeValue(buf, e.val.Interface()); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// enterContainer / leaveContainer implement the cycle check of spec
// §4.6: a container reachable from itself raises an EncodeError instead
// of recursing forever. Keyed on the container's pointer identity.
func (st *state) enterContainer(v any) error {
	key := containerKey(v)
	if key == nil {
		return nil
	}
	if _, ok := st.visiting[key]; ok {
		return tjerr.NewEncodeError(tjerr.ReferenceCycle, "container is reachable from itself")
	}
	st.visiting[key] = struct{}{}
	return nil
}

func (st *state) leaveContainer(v any) {
	key := containerKey(v)
	if key != nil {
		delete(st.visiting, key)
	}
}

func containerKey(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Pointer()
	case reflect.Slice:
		if rv.Len() == 0 {
			return nil // empty slices can't cycle and may be non-comparable pointers
		}
		return rv.Pointer()
	default:
		return nil
	}
}
