package scheduling

import (
	"fmt"
	"strings"
	"time"

	"condominium-server/models"
)

// Request is a reservation creation request as assembled by the caller,
// before it is checked against the live grid.
type Request struct {
	CommonAreaID       uint      `json:"commonAreaId"`
	ReservationDate    time.Time `json:"reservationDate"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	Purpose            string    `json:"purpose"`
	EstimatedAttendees int       `json:"estimatedAttendees"`
}

// ValidationResult carries blocking field errors and non-blocking
// warnings. Attendees above capacity is deliberately a warning only;
// submission proceeds.
type ValidationResult struct {
	Errors   ValidationError `json:"errors,omitempty"`
	Warnings ValidationError `json:"warnings,omitempty"`
}

// Ok reports whether the request may be submitted.
func (r ValidationResult) Ok() bool {
	return len(r.Errors) == 0
}

// ValidateRequest performs the structural checks on a reservation request.
// It does not run the conflict check; that is the availability resolver's
// job, invoked separately before final submission.
func ValidateRequest(req Request, area *models.CommonArea, now time.Time) ValidationResult {
	errs := ValidationError{}
	warns := ValidationError{}

	if area == nil {
		errs["commonAreaId"] = "common area not found"
		return ValidationResult{Errors: errs}
	}
	if !area.IsActive || !area.IsReservable {
		errs["commonAreaId"] = "common area is not reservable"
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.ReservationDate.IsZero() {
		errs["reservationDate"] = "reservation date is required"
	} else {
		date := time.Date(req.ReservationDate.Year(), req.ReservationDate.Month(), req.ReservationDate.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			errs["reservationDate"] = "reservation date cannot be in the past"
		} else if area.AdvanceReservationDays > 0 {
			limit := today.AddDate(0, 0, area.AdvanceReservationDays)
			if date.After(limit) {
				errs["reservationDate"] = fmt.Sprintf("reservations can be made at most %d days in advance", area.AdvanceReservationDays)
			}
		}
		if !area.OpenOn(date.Weekday()) {
			errs["reservationDate"] = "common area is closed on that day"
		}
	}

	start, errStart := ParseClock(req.StartTime)
	end, errEnd := ParseClock(req.EndTime)
	switch {
	case errStart != nil:
		errs["startTime"] = "start time is required (HH:MM)"
	case errEnd != nil:
		errs["endTime"] = "end time is required (HH:MM)"
	case !end.After(start):
		errs["endTime"] = "end time must be after start time"
	default:
		duration := end.Hour() - start.Hour()
		if area.MaxReservationHours > 0 && duration > area.MaxReservationHours {
			errs["endTime"] = fmt.Sprintf("reservations are limited to %d hours", area.MaxReservationHours)
		}
	}

	if strings.TrimSpace(req.Purpose) == "" {
		errs["purpose"] = "purpose is required"
	}

	if req.EstimatedAttendees < 1 {
		errs["estimatedAttendees"] = "at least one attendee is required"
	} else if area.Capacity > 0 && req.EstimatedAttendees > area.Capacity {
		// Soft warning only: the resident may still submit and let the
		// administrator decide.
		warns["estimatedAttendees"] = fmt.Sprintf("estimated attendees exceed the area capacity of %d", area.Capacity)
	}

	res := ValidationResult{}
	if len(errs) > 0 {
		res.Errors = errs
	}
	if len(warns) > 0 {
		res.Warnings = warns
	}
	return res
}
