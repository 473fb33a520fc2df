package tjvalue

import "time"

// Date is a calendar date with no time-of-day component, encoded as
// "YYYY-MM-DD".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from a time.Time, discarding the time-of-day and
// timezone.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time is a time-of-day with optional sub-second precision and no
// timezone other than UTC. Encoding a Time that carries a non-UTC
// location is a caller bug surfaced as an EncodeError (spec §4.7).
type Time struct {
	Hour, Minute, Second, Nanosecond int
	Location                        *time.Location // nil or time.UTC only
}

// NewTime builds a Time from a time.Time, keeping only the wall-clock
// fields and the location.
func NewTime(t time.Time) Time {
	return Time{
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
		Location:   t.Location(),
	}
}

// Datetime is a calendar date and time-of-day with an optional UTC
// offset. A nil Offset means "naive" (no timezone information).
type Datetime struct {
	Date
	Time
	Offset *time.Duration // signed offset from UTC; nil if naive
}

// NewDatetime builds a Datetime from a time.Time. If the time carries a
// fixed-zone offset, it is captured in Offset; for time.UTC the offset is
// zero, not nil — callers that want a naive Datetime should construct one
// directly with Offset left nil.
func NewDatetime(t time.Time) Datetime {
	_, offsetSec := t.Zone()
	d := time.Duration(offsetSec) * time.Second
	return Datetime{Date: NewDate(t), Time: NewTime(t), Offset: &d}
}

// UUID is a 128-bit universally unique identifier.
type UUID [16]byte

// Fragment is a byte slice that is already valid JSON. The encoder
// inserts it verbatim with no validation — the caller asserts the
// contract (spec §4.7).
type Fragment []byte

// RecordField is one named field of a Record, encoded in declaration
// order.
type RecordField struct {
	Name  string
	Value any
}

// Record is the Go stand-in for a labelled, data-class-like value: an
// ordered set of named fields, each re-dispatched through the encoder
// exactly like any other value (spec §4.7).
type Record struct {
	Fields []RecordField
}
