package turbojson

import (
	"time"

	"github.com/turbojson/turbojson/internal/tjvalue"
)

// Date is a calendar date with no time-of-day component (spec §4.7).
type Date = tjvalue.Date

// NewDate builds a Date from a time.Time, discarding time-of-day and zone.
func NewDate(t time.Time) Date { return tjvalue.NewDate(t) }

// Time is a time-of-day with optional sub-second precision, UTC only.
type Time = tjvalue.Time

// NewTime builds a Time from a time.Time, keeping the wall-clock fields
// and location.
func NewTime(t time.Time) Time { return tjvalue.NewTime(t) }

// Datetime is a calendar date and time-of-day with an optional UTC offset.
type Datetime = tjvalue.Datetime

// NewDatetime builds a Datetime from a time.Time.
func NewDatetime(t time.Time) Datetime { return tjvalue.NewDatetime(t) }

// UUID is a 128-bit universally unique identifier.
type UUID = tjvalue.UUID

// Fragment is a byte slice that is already valid JSON, inserted verbatim.
type Fragment = tjvalue.Fragment

// RecordField is one named field of a Record, in declaration order.
type RecordField = tjvalue.RecordField

// Record is an ordered set of named fields, each re-dispatched through the
// encoder like any other value (spec §4.7).
type Record = tjvalue.Record
