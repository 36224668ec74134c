package scheduling

import (
	"fmt"
	"strings"
	"time"

	"condominium-server/models"
)

// Action is a manual reservation transition. "completed" is not an action:
// it is a time-driven state owned by the backend rollover, never produced
// here.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

// Actor identifies who is attempting a transition.
type Actor struct {
	UserID uint
	Admin  bool
}

// Transition applies a manual action to the reservation in place.
//
// Allowed transitions:
//
//	pending  --approve--> approved   (admin)
//	pending  --reject--->  rejected  (admin, notes required)
//	pending  --cancel--->  cancelled (requester or admin)
//	approved --cancel--->  cancelled (requester or admin)
//
// Anything else fails with ErrInvalidTransition. Rejecting without notes
// fails with a ValidationError before the status is touched.
func Transition(res *models.Reservation, action Action, actor Actor, notes string) error {
	switch action {
	case ActionApprove:
		if res.Status != models.ReservationPending {
			return fmt.Errorf("%w: cannot approve a %s reservation", ErrInvalidTransition, res.Status)
		}
		if !actor.Admin {
			return fmt.Errorf("%w: only an administrator may approve", ErrForbidden)
		}
		res.Status = models.ReservationApproved
		res.ApprovedByID = &actor.UserID
		if notes != "" {
			res.AdminNotes = notes
		}
		return nil

	case ActionReject:
		if res.Status != models.ReservationPending {
			return fmt.Errorf("%w: cannot reject a %s reservation", ErrInvalidTransition, res.Status)
		}
		if !actor.Admin {
			return fmt.Errorf("%w: only an administrator may reject", ErrForbidden)
		}
		if strings.TrimSpace(notes) == "" {
			return ValidationError{"adminNotes": "notes are required when rejecting a reservation"}
		}
		res.Status = models.ReservationRejected
		res.ApprovedByID = &actor.UserID
		res.AdminNotes = notes
		return nil

	case ActionCancel:
		if res.Status != models.ReservationPending && res.Status != models.ReservationApproved {
			return fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidTransition, res.Status)
		}
		if !actor.Admin && actor.UserID != res.UserID {
			return fmt.Errorf("%w: only the requester or an administrator may cancel", ErrForbidden)
		}
		res.Status = models.ReservationCancelled
		if notes != "" {
			res.AdminNotes = notes
		}
		return nil
	}
	return fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
}

// IsEffectivelyCompleted reports whether an approved reservation has
// already ended. The stored status is left untouched; the backend rollover
// owns the real completed state, this is only a display projection.
func IsEffectivelyCompleted(res *models.Reservation, now time.Time) bool {
	if res.Status != models.ReservationApproved {
		return false
	}
	end := Combine(res.ReservationDate, res.EndTime)
	return !end.IsZero() && end.Before(now)
}
