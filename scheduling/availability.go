package scheduling

import (
	"time"

	"condominium-server/models"
)

// SlotStatus classifies a slot in the weekly grid.
type SlotStatus string

const (
	SlotFree         SlotStatus = "free"
	SlotHeldPending  SlotStatus = "held_pending"
	SlotHeldApproved SlotStatus = "held_approved"
	SlotClosed       SlotStatus = "closed"
	SlotPast         SlotStatus = "past"
)

// Selectable reports whether a caller may book a slot in this state.
func Selectable(s SlotStatus) bool {
	return s == SlotFree
}

// SlotAvailability is a classified grid cell. ReservationID is set only
// for held slots.
type SlotAvailability struct {
	Slot
	Status        SlotStatus `json:"status"`
	ReservationID uint       `json:"reservationId,omitempty"`
}

// DayAvailability is one annotated day of the weekly grid.
type DayAvailability struct {
	Date  time.Time          `json:"date"`
	Open  bool               `json:"open"`
	Slots []SlotAvailability `json:"slots"`
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncateClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// ClassifyWeek annotates every slot of the generated grid against the
// known reservations for the area. Only pending and approved reservations
// occupy a slot; rejected, cancelled and completed reservations never
// block anything, including future availability. A matching held
// reservation wins over the past check so that history still renders as
// held.
func ClassifyWeek(days []DaySchedule, reservations []models.Reservation, now time.Time) []DayAvailability {
	// Group occupying reservations by calendar date; area-scoped sets are
	// small so a per-day linear scan is fine.
	byDate := make(map[string][]models.Reservation)
	for _, r := range reservations {
		if !r.Occupies() {
			continue
		}
		key := dateKey(r.ReservationDate)
		byDate[key] = append(byDate[key], r)
	}

	out := make([]DayAvailability, 0, len(days))
	for _, day := range days {
		annotated := DayAvailability{Date: day.Date, Open: day.Open}
		if !day.Open {
			out = append(out, annotated)
			continue
		}
		held := byDate[dateKey(day.Date)]
		for _, slot := range day.Slots {
			cell := SlotAvailability{Slot: slot, Status: SlotFree}
			for _, r := range held {
				if truncateClock(r.StartTime) == slot.Start && truncateClock(r.EndTime) == slot.End {
					if r.Status == models.ReservationApproved {
						cell.Status = SlotHeldApproved
					} else {
						cell.Status = SlotHeldPending
					}
					cell.ReservationID = r.ID
					break
				}
			}
			if cell.Status == SlotFree && !Combine(day.Date, slot.Start).After(now) {
				cell.Status = SlotPast
			}
			annotated.Slots = append(annotated.Slots, cell)
		}
		out = append(out, annotated)
	}
	return out
}

// FindSlotStatus looks up the classification of a single (date, start, end)
// cell in an annotated grid. Closed days report SlotClosed; a cell the
// generator never emitted reports SlotClosed as well, since it is not a
// bookable window.
func FindSlotStatus(grid []DayAvailability, date time.Time, start, end string) SlotStatus {
	key := dateKey(date)
	for _, day := range grid {
		if dateKey(day.Date) != key {
			continue
		}
		if !day.Open {
			return SlotClosed
		}
		for _, cell := range day.Slots {
			if cell.Start == truncateClock(start) && cell.End == truncateClock(end) {
				return cell.Status
			}
		}
		return SlotClosed
	}
	return SlotClosed
}
