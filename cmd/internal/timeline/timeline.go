package timeline

import (
	"fmt"
	"math"
	"time"

	"daybook/cmd/internal/domain/entity"
)

// The visible day spans 01:00-23:00, minute granularity. Drag and
// placement offsets snap to quarter hours.
const (
	Start           = 60
	End             = 1380
	SnapStep        = 15
	DefaultDuration = 60
)

const dateLayout = "2006-01-02"

// DateKey formats t as the YYYY-MM-DD key appointments are grouped by.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD day key.
func ParseDate(day string) (time.Time, error) {
	return time.Parse(dateLayout, day)
}

// ForDay filters the collection down to the appointments on the given
// day, preserving insertion order. An empty day yields no matches.
func ForDay(all []entity.Appointment, day string) []entity.Appointment {
	if day == "" {
		return nil
	}
	var matched []entity.Appointment
	for _, a := range all {
		if a.Date == day {
			matched = append(matched, a)
		}
	}
	return matched
}

// DaysInMonth lists every calendar day of the month containing anchor,
// first to last. Only the anchor's year and month matter.
func DaysInMonth(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	count := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]time.Time, count)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// Ticks returns the hourly offsets of the timeline, from Start up to
// but excluding End.
func Ticks() []int {
	ticks := make([]int, (End-Start)/60)
	for i := range ticks {
		ticks[i] = Start + i*60
	}
	return ticks
}

// GridLines returns the hourly row offsets relative to the top of the
// timeline.
func GridLines() []int {
	lines := make([]int, (End-Start)/60)
	for i := range lines {
		lines[i] = i * 60
	}
	return lines
}

// FormatTime renders a minute-of-day offset as a 12-hour clock string,
// e.g. 805 -> "1:25 PM". Hour zero renders as 12.
func FormatTime(totalMinutes int) string {
	hr := totalMinutes / 60
	min := totalMinutes % 60
	ampm := "AM"
	if hr >= 12 {
		ampm = "PM"
	}
	hr = hr % 12
	if hr == 0 {
		hr = 12
	}
	return fmt.Sprintf("%d:%02d %s", hr, min, ampm)
}

// FormatInterval renders the appointment's start and end times.
func FormatInterval(a entity.Appointment) string {
	return FormatTime(a.Start) + " – " + FormatTime(a.Start+a.Duration)
}

// Round snaps a raw offset to the nearest quarter-hour multiple.
func Round(offset int) int {
	return int(math.Round(float64(offset)/SnapStep)) * SnapStep
}

// SnapToGrid turns a raw drag offset (minutes from the top of the
// timeline) into the appointment's new start: snapped to the grid, then
// clamped so the whole appointment stays inside the visible day.
func SnapToGrid(rawOffset, duration int) int {
	start := Start + Round(rawOffset)
	return Clamp(start, duration)
}

// Clamp forces start into [Start, End-duration]. Out-of-range values
// are clamped rather than rejected.
func Clamp(start, duration int) int {
	if start < Start {
		start = Start
	}
	if start+duration > End {
		start = End - duration
	}
	return start
}
