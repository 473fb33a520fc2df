package tjencode

import (
	guuid "github.com/google/uuid"

	"github.com/turbojson/turbojson/internal/tjbuf"
	"github.com/turbojson/turbojson/internal/tjvalue"
)

// encodeUUID writes a UUID in canonical 8-4-4-4-12 lowercase hex form
// (spec §4.7), delegating the formatting itself to google/uuid rather than
// hand-rolling hex grouping.
func encodeUUID(buf *tjbuf.Buffer, u tjvalue.UUID) {
	buf.WriteByte('"')
	buf.WriteString(formatUUID(u))
	buf.WriteByte('"')
}

func formatUUID(u tjvalue.UUID) string {
	return guuid.UUID(u).String()
}
