package quicklog

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the time frame of a rollover period
type Unit int

const (
	UnitSecond Unit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
	UnitMonday
	UnitTuesday
	UnitWednesday
	UnitThursday
	UnitFriday
	UnitSaturday
	UnitSunday
)

var unitNames = [...]string{
	UnitSecond:    "second",
	UnitMinute:    "minute",
	UnitHour:      "hour",
	UnitDay:       "day",
	UnitWeek:      "week",
	UnitMonth:     "month",
	UnitYear:      "year",
	UnitMonday:    "Monday",
	UnitTuesday:   "Tuesday",
	UnitWednesday: "Wednesday",
	UnitThursday:  "Thursday",
	UnitFriday:    "Friday",
	UnitSaturday:  "Saturday",
	UnitSunday:    "Sunday",
}

// unitLookup maps every unit name to its unit
var unitLookup = func() map[string]Unit {
	m := make(map[string]Unit, len(unitNames))
	for i, name := range unitNames {
		m[name] = Unit(i)
	}
	return m
}()

// maxUnitTrim is how many trailing characters may be trimmed when resolving a unit
const maxUnitTrim = 2

// String returns the unit name
func (u Unit) String() string {
	if u < UnitSecond || u > UnitSunday {
		return "unknown"
	}
	return unitNames[u]
}

// IsWeekday reports whether the unit names a day of the week
func (u Unit) IsWeekday() bool {
	return u >= UnitMonday && u <= UnitSunday
}

// Weekday converts a weekday unit to time.Weekday
func (u Unit) Weekday() time.Weekday {
	// UnitMonday..UnitSunday -> Monday(1)..Saturday(6), Sunday(0)
	return time.Weekday((int(u-UnitMonday) + 1) % 7)
}

// TimeOfDay is the wall-clock time at which calendar-based rollovers fire
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// String renders the time as HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// RolloverSpec is a parsed rollover period. Immutable once parsed.
type RolloverSpec struct {
	Multiplier int
	Unit       Unit
	At         TimeOfDay
}

// DefaultRolloverSpec is the fallback period: every 86400 seconds from start
func DefaultRolloverSpec() RolloverSpec {
	return RolloverSpec{Multiplier: secondsPerDay, Unit: UnitSecond}
}

// String renders the spec in its textual grammar
func (s RolloverSpec) String() string {
	if s.Unit.IsWeekday() {
		return s.Unit.String() + "@" + s.At.String()
	}
	return fmt.Sprintf("%d %s@%s", s.Multiplier, s.Unit, s.At)
}

// ParseRolloverSpec parses a rollover period of the form
//
//	[<multiplier> ]<unit>[@HH[:MM[:SS]]]
//
// where unit is one of second, minute, hour, day, week, month, year or a
// weekday name (Monday..Sunday). Up to two trailing characters of the unit are
// tolerated, so "weeks" and "hours" resolve. Missing time components are 0.
// Examples: "200 seconds", "1 day@15:00", "2 weeks@12:00:00", "Sunday@03:00:00".
//
// Parsing never fails: input with no recognizable unit resolves to
// DefaultRolloverSpec.
func ParseRolloverSpec(text string) RolloverSpec {
	spec := RolloverSpec{Multiplier: 1}
	rest := text

	if head, tail, found := strings.Cut(text, " "); found {
		// A non-numeric or non-positive head is part of the unit, not a multiplier
		if n := leadingInt(head); n > 0 {
			spec.Multiplier = n
			rest = tail
		}
	}

	unitName, at, hasTime := strings.Cut(rest, "@")
	if hasTime {
		spec.At = parseTimeOfDay(at)
	}

	unit, ok := resolveUnit(strings.TrimSpace(unitName))
	if !ok {
		return DefaultRolloverSpec()
	}
	spec.Unit = unit
	return spec
}

// parseTimeOfDay parses HH[:MM[:SS]]; unparseable components are 0
func parseTimeOfDay(text string) TimeOfDay {
	var t TimeOfDay
	parts := strings.Split(text, ":")
	for i, p := range parts {
		switch i {
		case 0:
			t.Hour = leadingInt(p)
		case 1:
			t.Minute = leadingInt(p)
		case 2:
			t.Second = leadingInt(p)
		}
	}
	return t
}

// resolveUnit matches name against the known units, trimming up to
// maxUnitTrim trailing characters
func resolveUnit(name string) (Unit, bool) {
	for trim := 0; trim <= maxUnitTrim && trim < len(name); trim++ {
		if u, ok := unitLookup[name[:len(name)-trim]]; ok {
			return u, true
		}
	}
	return 0, false
}

// NextTrigger returns the time from now until the next rollover.
//
// second/minute/hour count multiplier units from now. day and week target
// today's time-of-day advanced by multiplier days (or weeks). month targets the
// 1st of next month and year the 1st of January next year, both at the
// time-of-day. Weekday units target the next occurrence of that weekday at the
// time-of-day that is strictly after now; today qualifies if the time-of-day
// has not passed yet.
func NextTrigger(spec RolloverSpec, now time.Time) time.Duration {
	mult := spec.Multiplier
	if mult < 1 {
		mult = 1
	}

	switch spec.Unit {
	case UnitSecond:
		return time.Duration(mult) * time.Second
	case UnitMinute:
		return time.Duration(mult) * time.Minute
	case UnitHour:
		return time.Duration(mult) * time.Hour
	}

	year, month, day := now.Date()
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, spec.At.Hour, spec.At.Minute, spec.At.Second, 0, now.Location())
	}

	var target time.Time
	switch spec.Unit {
	case UnitDay:
		target = at(year, month, day+mult)
	case UnitWeek:
		target = at(year, month, day+7*mult)
	case UnitMonth:
		target = at(year, month+1, 1)
	case UnitYear:
		target = at(year+1, time.January, 1)
	default:
		if !spec.Unit.IsWeekday() {
			return time.Duration(secondsPerDay) * time.Second
		}
		ahead := (int(spec.Unit.Weekday()) - int(now.Weekday()) + 7) % 7
		target = at(year, month, day+ahead)
		if !target.After(now) {
			target = at(year, month, day+ahead+7)
		}
	}

	if d := target.Sub(now); d > 0 {
		return d
	}
	return 0
}
