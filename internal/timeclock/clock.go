package timeclock

import (
	"net/url"
	"time"
)

// Clock resolves "now" for one request. A debug override (query params or
// cookie) can pin the clock to a fixed instant; everything downstream takes
// a Clock instead of calling time.Now so tests stay deterministic.
type Clock struct {
	Loc      *time.Location
	override *time.Time
}

// NewClock returns a real-time clock in the given location.
func NewClock(loc *time.Location) Clock {
	return Clock{Loc: loc}
}

// FixedClock returns a clock pinned to t.
func FixedClock(t time.Time, loc *time.Location) Clock {
	t = t.In(loc)
	return Clock{Loc: loc, override: &t}
}

// Now returns the resolved wall-clock time in the clock's location.
func (c Clock) Now() time.Time {
	if c.override != nil {
		return *c.override
	}
	return time.Now().In(c.Loc)
}

// Overridden reports whether a debug override is active.
func (c Clock) Overridden() bool {
	return c.override != nil
}

// ResolveClock builds a Clock for a request. tz names the user's time zone
// (UTC on failure). An override comes from `date` + `time` query params
// ("2006-01-02" + "15:04") or, failing that, from the override cookie value
// ("2006-01-02 15:04"). Malformed overrides are silently ignored.
func ResolveClock(tz string, query url.Values, overrideCookie string) Clock {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}

	if d, t := query.Get("date"), query.Get("time"); d != "" && t != "" {
		if at, err := time.ParseInLocation("2006-01-02 15:04", d+" "+t, loc); err == nil {
			return FixedClock(at, loc)
		}
	}
	if overrideCookie != "" {
		if at, err := time.ParseInLocation("2006-01-02 15:04", overrideCookie, loc); err == nil {
			return FixedClock(at, loc)
		}
	}
	return NewClock(loc)
}

// StartOfDay returns midnight of t's calendar day in loc. Midnight is
// re-derived from the calendar date rather than computed by subtracting
// hours, which keeps DST transition days correct.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves t by n calendar days in loc, preserving the wall-clock
// time of day across DST boundaries.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// ToYMD formats t as YYYY-MM-DD in loc.
func ToYMD(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ParseYMD parses a YYYY-MM-DD string as midnight in loc.
func ParseYMD(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
