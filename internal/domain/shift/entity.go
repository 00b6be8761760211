package shift

import (
	"fmt"
	"strings"
	"time"
)

// Known shift names. Anything else is still a valid shift, just with the lowest priority.
const (
	NameRamadan = "RAMADAN"
	NameSummer  = "SUMMER"
	NameWinter  = "WINTER"
)

type Shift struct {
	ID            int64
	Name          string
	StartTime     string // HH:MM:SS, timezone-naive
	EndTime       string // HH:MM:SS, timezone-naive
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	IsActive      bool
}

// Covers reports whether the calendar day of date falls inside the effective range.
// A nil bound is open-ended.
func (s Shift) Covers(date time.Time) bool {
	day := dateOnly(date)
	if s.EffectiveFrom != nil && day.Before(dateOnly(*s.EffectiveFrom)) {
		return false
	}
	if s.EffectiveTo != nil && day.After(dateOnly(*s.EffectiveTo)) {
		return false
	}
	return true
}

// StartOn returns the shift start as a wall-clock instant on the given day in loc.
func (s Shift) StartOn(date time.Time, loc *time.Location) (time.Time, error) {
	return clockOn(s.StartTime, date, loc)
}

// EndOn returns the shift end as a wall-clock instant on the given day in loc.
func (s Shift) EndOn(date time.Time, loc *time.Location) (time.Time, error) {
	return clockOn(s.EndTime, date, loc)
}

// NormalizedName is the upper-cased, trimmed shift name used for priority lookups.
func (s Shift) NormalizedName() string {
	return strings.ToUpper(strings.TrimSpace(s.Name))
}

func clockOn(clock string, date time.Time, loc *time.Location) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err = time.Parse(layout, strings.TrimSpace(clock))
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid shift clock %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Rule is the grace-period and notification policy applied to punches.
type Rule struct {
	ID             int64
	GraceMinutes   int
	NotifyEmployee bool
	NotifyHRAdmin  bool
	IsActive       bool
}

// DefaultRule applies when no active rule row exists.
var DefaultRule = Rule{
	GraceMinutes:   15,
	NotifyEmployee: true,
	NotifyHRAdmin:  true,
	IsActive:       true,
}
