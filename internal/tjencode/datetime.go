package tjencode

import (
	"fmt"
	"time"

	"github.com/turbojson/turbojson/internal/tjbuf"
	"github.com/turbojson/turbojson/internal/tjoptions"
	"github.com/turbojson/turbojson/internal/tjvalue"
	"github.com/turbojson/turbojson/tjerr"
)

// encodeDate writes a Date as "YYYY-MM-DD" (spec §4.7).
func encodeDate(buf *tjbuf.Buffer, d tjvalue.Date) error {
	buf.WriteByte('"')
	buf.WriteString(formatDate(d))
	buf.WriteByte('"')
	return nil
}

func formatDate(d tjvalue.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// encodeTime writes a Time as "HH:MM:SS[.ffffff]" (spec §4.7). A Time
// whose Location is neither nil nor time.UTC is a caller bug: Time has no
// room for an offset, so encoding one would silently discard it.
func encodeTime(buf *tjbuf.Buffer, t tjvalue.Time) error {
	if err := checkTimeLocation(t); err != nil {
		return err
	}
	buf.WriteByte('"')
	buf.WriteString(formatTime(t, 0))
	buf.WriteByte('"')
	return nil
}

func checkTimeLocation(t tjvalue.Time) error {
	if t.Location != nil && t.Location != time.UTC {
		return tjerr.NewEncodeError(tjerr.UnserializableTZ, "time-of-day value carries a non-UTC location")
	}
	return nil
}

func formatTime(t tjvalue.Time, opt tjoptions.Option) string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 && !opt.Has(tjoptions.OmitMicroseconds) {
		micros := t.Nanosecond / 1000
		s += fmt.Sprintf(".%06d", micros)
	}
	return s
}

// encodeDatetime writes a Datetime as an ISO-8601 string (spec §4.7),
// honoring NAIVE_UTC (treat a naive datetime, Offset == nil, as UTC and
// append "+00:00") and UTC_Z (render a zero offset as "Z" instead of
// "+00:00").
func (st *state) encodeDatetime(buf *tjbuf.Buffer, dt tjvalue.Datetime) error {
	if st.opt.Has(tjoptions.PassthroughDatetime) {
		return st.invokeFallback(buf, dt)
	}
	buf.WriteByte('"')
	buf.WriteString(formatDatetime(dt, st.opt))
	buf.WriteByte('"')
	return nil
}

func formatDatetime(dt tjvalue.Datetime, opt tjoptions.Option) string {
	s := formatDate(dt.Date) + "T" + formatTime(dt.Time, opt)

	off := dt.Offset
	if off == nil {
		if !opt.Has(tjoptions.NaiveUTC) {
			return s
		}
		var zero time.Duration
		off = &zero
	}

	if *off == 0 {
		if opt.Has(tjoptions.UTCZ) {
			return s + "Z"
		}
		return s + "+00:00"
	}

	v := *off
	sign := "+"
	if v < 0 {
		sign = "-"
		v = -v
	}
	hours := int(v / time.Hour)
	minutes := int((v % time.Hour) / time.Minute)
	return fmt.Sprintf("%s%s%02d:%02d", s, sign, hours, minutes)
}
