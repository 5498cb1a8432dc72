package propkv

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time component. Its base form is the
// UTC midnight timestamp of that date, so all temporal properties share a
// single storage representation.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{y, m, d}
}

func (d Date) UTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a clock time without a date component. Its base form fixes
// the date to the epoch day, 1970-01-01 UTC.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{t.Hour(), t.Minute(), t.Second(), t.Nanosecond()}
}

func (td TimeOfDay) OnEpochDay() time.Time {
	return time.Date(1970, time.January, 1, td.Hour, td.Minute, td.Second, td.Nanosecond, time.UTC)
}

func (td TimeOfDay) String() string {
	if td.Nanosecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%09d", td.Hour, td.Minute, td.Second, td.Nanosecond)
	}
	return fmt.Sprintf("%02d:%02d:%02d", td.Hour, td.Minute, td.Second)
}

func validateDateTime(p *Property, value any) (any, error) {
	if v, ok := value.(time.Time); ok {
		return v, nil
	}
	return nil, invalidValuef(p, value, nil, "expected time.Time")
}

func dateTimeFromDB(p *Property, raw any) (any, error) {
	if v, ok := raw.(time.Time); ok {
		return v.UTC(), nil
	}
	return raw, nil
}

func validateDate(p *Property, value any) (any, error) {
	if v, ok := value.(Date); ok {
		return v, nil
	}
	return nil, invalidValuef(p, value, nil, "expected Date")
}

func validateTimeOfDay(p *Property, value any) (any, error) {
	if v, ok := value.(TimeOfDay); ok {
		return v, nil
	}
	return nil, invalidValuef(p, value, nil, "expected TimeOfDay")
}

func dateToBase(p *Property, value any) (any, error) {
	v, ok := value.(Date)
	if !ok {
		return nil, invalidValuef(p, value, nil, "expected Date base input")
	}
	return v.UTC(), nil
}

// The base form is defined in UTC, so narrowing converts first; a driver
// may decode timestamps into the local zone.
func dateFromBase(p *Property, value any) (any, error) {
	v, ok := value.(time.Time)
	if !ok {
		return nil, invalidValuef(p, value, nil, "expected time.Time base value")
	}
	return DateOf(v.UTC()), nil
}

func timeOfDayToBase(p *Property, value any) (any, error) {
	v, ok := value.(TimeOfDay)
	if !ok {
		return nil, invalidValuef(p, value, nil, "expected TimeOfDay base input")
	}
	return v.OnEpochDay(), nil
}

func timeOfDayFromBase(p *Property, value any) (any, error) {
	v, ok := value.(time.Time)
	if !ok {
		return nil, invalidValuef(p, value, nil, "expected time.Time base value")
	}
	return TimeOfDayOf(v.UTC()), nil
}
