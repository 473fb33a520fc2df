package tjencode

import (
	"sort"

	"github.com/turbojson/turbojson/internal/tjbuf"
	"github.com/turbojson/turbojson/internal/tjoptions"
	"github.com/turbojson/turbojson/internal/tjvalue"
)

// encodeTreeValue writes a decoder-produced Value tree back out verbatim
// (spec §9's round-trip requirement). This is the codec's own native tree
// type, so it bypasses the subclass/fallback machinery entirely and writes
// each Kind directly.
func (st *state) encodeTreeValue(buf *tjbuf.Buffer, v *tjvalue.Value) error {
	switch v.Kind {
	case tjvalue.KindNull:
		buf.WriteString("null")
		return nil
	case tjvalue.KindBool:
		encodeBool(buf, v.Bool)
		return nil
	case tjvalue.KindInt64:
		return st.encodeInt64(buf, v.Int64)
	case tjvalue.KindUint64:
		return st.encodeUint64(buf, v.Uint64)
	case tjvalue.KindFloat64:
		return st.encodeFloat(buf, v.Float64)
	case tjvalue.KindString:
		return encodeString(buf, v.Str)
	case tjvalue.KindArray:
		buf.WriteByte('[')
		for i := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := st.encodeTreeValue(buf, &v.Elems[i]); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case tjvalue.KindObject:
		members := v.Members
		order := make([]int, len(members))
		for i := range order {
			order[i] = i
		}
		if st.opt.Has(tjoptions.SortKeys) {
			sort.Slice(order, func(i, j int) bool { return members[order[i]].Key < members[order[j]].Key })
		}
		buf.WriteByte('{')
		for i, idx := range order {
			if i > 0 {
				buf.WriteByte(',')
			}
			m := &members[idx]
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := st.encodeTreeValue(buf, &m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		buf.WriteString("null")
		return nil
	}
}
