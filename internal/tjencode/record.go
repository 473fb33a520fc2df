package tjencode

import (
	"sort"

	"github.com/turbojson/turbojson/internal/tjbuf"
	"github.com/turbojson/turbojson/internal/tjoptions"
	"github.com/turbojson/turbojson/internal/tjvalue"
)

// encodeRecord writes a Record as a JSON object with its fields in
// declaration order, each field value re-dispatched through the ordinary
// encoder path (spec §4.7). SORT_KEYS still applies: a Record is just an
// ordered object once it reaches the wire, so it sorts like any other.
func (st *state) encodeRecord(buf *tjbuf.Buffer, r tjvalue.Record) error {
	fields := r.Fields
	order := make([]int, len(fields))
	for i := range order {
		order[i] = i
	}
	if st.opt.Has(tjoptions.SortKeys) {
		sort.Slice(order, func(i, j int) bool { return fields[order[i]].Name < fields[order[j]].Name })
	}

	buf.WriteByte('{')
	for i, idx := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		f := fields[idx]
		if err := encodeString(buf, f.Name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := st.encodeValue(buf, f.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
