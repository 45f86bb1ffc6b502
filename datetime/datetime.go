// Package datetime does the arithmetic on local date-times, meaning date-times without a time zone.
package datetime

import (
	"errors"
	"time"

	"webtools/tools"
)

// OutputLayout is how resulting date-times are formatted. The fraction is left out when it is zero.
const OutputLayout = "2006-01-02T15:04:05.999999999"

// Seconds are optional in both date-times and times. When seconds are given, time.Parse also accepts a fraction after them.
var (
	dateTimeLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
	timeLayouts     = []string{"15:04:05", "15:04"}
)

// Index of the ':' that follows a two digit hour. The "15" layout element also accepts a single digit, which shows as a ':' one byte early.
const (
	dateTimeHourEnd = len("2006-01-02T15")
	timeHourEnd     = len("15")
)

var errHourDigits = errors.New("hour must have two digits")

type calculatorImpl struct{}

// NewCalculator creates a tools.DateCalculator.
func NewCalculator() tools.DateCalculator {
	return &calculatorImpl{}
}

func (c *calculatorImpl) DiffSeconds(dt1 string, dt2 string) (secs int64, err error) {
	t1, err := ParseDateTime("datetime1", dt1)
	if err != nil {
		return
	}

	t2, err := ParseDateTime("datetime2", dt2)
	if err != nil {
		return
	}

	secs = DiffSeconds(t1, t2)
	return
}

func (c *calculatorImpl) Offset(base string, addTime string, subtract bool) (result string, err error) {
	b, err := ParseDateTime("baseDateTime", base)
	if err != nil {
		return
	}

	a, err := ParseTime("addTime", addTime)
	if err != nil {
		return
	}

	result = Format(Offset(b, a, subtract))
	return
}

// ParseDateTime parses a local date-time like 2023-12-25T12:30:00. The result is in UTC, which has no daylight saving gaps, so calendar arithmetic on it is exact. field names the input in the returned *tools.TemporalParseError.
func ParseDateTime(field string, value string) (t time.Time, err error) {
	return parseFirst(field, value, dateTimeLayouts, dateTimeHourEnd)
}

// ParseTime parses a local time of day like 02:30:15. The date part of the result is meaningless.
func ParseTime(field string, value string) (t time.Time, err error) {
	return parseFirst(field, value, timeLayouts, timeHourEnd)
}

func parseFirst(field string, value string, layouts []string, hourEnd int) (t time.Time, err error) {
	if len(value) >= hourEnd && value[hourEnd-1] == ':' {
		err = &tools.TemporalParseError{Field: field, Value: value, Err: errHourDigits}
		return
	}

	for _, layout := range layouts {
		t, err = time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return
		}
	}

	// Report the error of the most complete layout.
	_, err = time.ParseInLocation(layouts[0], value, time.UTC)
	err = &tools.TemporalParseError{Field: field, Value: value, Err: err}
	return
}

// DiffSeconds gives the absolute number of whole seconds between t1 and t2. The fraction of a second is truncated.
// time.Time.Sub saturates at about 292 years, so this is computed from the Unix seconds instead.
func DiffSeconds(t1 time.Time, t2 time.Time) int64 {
	secs := t1.Unix() - t2.Unix()
	nanos := int64(t1.Nanosecond() - t2.Nanosecond())

	if secs > 0 && nanos < 0 {
		secs--
	} else if secs < 0 && nanos > 0 {
		secs++
	}

	if secs < 0 {
		secs = -secs
	}
	return secs
}

// Offset adds the hours, minutes and seconds of addTime to base, or subtracts them. The fraction of addTime is ignored.
func Offset(base time.Time, addTime time.Time, subtract bool) time.Time {
	d := time.Duration(addTime.Hour())*time.Hour +
		time.Duration(addTime.Minute())*time.Minute +
		time.Duration(addTime.Second())*time.Second

	if subtract {
		d = -d
	}
	return base.Add(d)
}

// Format formats t with OutputLayout.
func Format(t time.Time) string {
	return t.Format(OutputLayout)
}
