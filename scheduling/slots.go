// Package scheduling holds the reservation core for common areas: weekly
// slot generation, availability classification, cost quoting, request
// validation and the reservation status state machine. Everything here is
// a pure function of its inputs; persistence and HTTP live in routes/.
package scheduling

import (
	"fmt"
	"time"

	"condominium-server/models"
)

// SlotHours is the fixed width of every bookable slot.
const SlotHours = 2

const clockLayout = "15:04"

// Slot is a candidate reservation window on a single day.
type Slot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// DaySchedule is one day of the weekly grid. Closed days are still listed
// so callers can render them, but they carry no slots.
type DaySchedule struct {
	Date  time.Time `json:"date"`
	Open  bool      `json:"open"`
	Slots []Slot    `json:"slots"`
}

// WeekOf returns the Monday of the week containing ref, truncated to
// midnight in ref's location.
func WeekOf(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// ParseClock parses an "HH:MM" time-of-day string. Seconds, if present,
// are ignored.
func ParseClock(s string) (time.Time, error) {
	if len(s) > 5 {
		s = s[:5]
	}
	return time.Parse(clockLayout, s)
}

// FormatClock renders an hour/minute pair as "HH:MM".
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Combine attaches a time-of-day string to a calendar date. The zero time
// is returned when the clock string does not parse.
func Combine(date time.Time, clock string) time.Time {
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// GenerateWeek builds the 7-day slot grid starting at the Monday of the
// week containing ref. Slots step through the area's daily window in
// SlotHours increments; a slot is emitted only when its full width fits,
// so a trailing partial hour is dropped (an 08:00-13:00 window yields
// 08:00 and 10:00 only). Inactive or non-reservable areas, and areas with
// a missing or malformed operating window, produce a grid with no slots
// rather than an error.
func GenerateWeek(area *models.CommonArea, ref time.Time) []DaySchedule {
	monday := WeekOf(ref)

	days := make([]DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		days = append(days, DaySchedule{Date: date, Open: false})
	}
	if area == nil || !area.IsActive || !area.IsReservable {
		return days
	}

	from, errFrom := ParseClock(area.AvailableFrom)
	to, errTo := ParseClock(area.AvailableTo)
	if errFrom != nil || errTo != nil {
		return days
	}
	fromHour, toHour := from.Hour(), to.Hour()
	if toHour <= fromHour {
		return days
	}

	for i := range days {
		if !area.OpenOn(days[i].Date.Weekday()) {
			continue
		}
		days[i].Open = true
		for hour := fromHour; hour+SlotHours <= toHour; hour += SlotHours {
			days[i].Slots = append(days[i].Slots, Slot{
				Start: FormatClock(hour, 0),
				End:   FormatClock(hour+SlotHours, 0),
			})
		}
	}
	return days
}
