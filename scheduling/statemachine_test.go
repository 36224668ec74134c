package scheduling

import (
	"errors"
	"testing"
	"time"

	"condominium-server/models"
)

func pendingReservation() *models.Reservation {
	r := &models.Reservation{
		UserID:          7,
		CommonAreaID:    1,
		ReservationDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "12:00",
		Status:          models.ReservationPending,
	}
	r.ID = 1
	return r
}

var (
	admin     = Actor{UserID: 99, Admin: true}
	requester = Actor{UserID: 7}
	stranger  = Actor{UserID: 8}
)

func TestApprove(t *testing.T) {
	res := pendingReservation()
	if err := Transition(res, ActionApprove, admin, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if res.Status != models.ReservationApproved {
		t.Fatalf("expected approved, got %s", res.Status)
	}
	if res.ApprovedByID == nil || *res.ApprovedByID != admin.UserID {
		t.Fatal("approvedBy should record the acting administrator")
	}
}

func TestApproveTwiceIsInvalid(t *testing.T) {
	res := pendingReservation()
	Transition(res, ActionApprove, admin, "")
	err := Transition(res, ActionApprove, admin, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	res := pendingReservation()
	if err := Transition(res, ActionApprove, requester, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if res.Status != models.ReservationPending {
		t.Fatalf("status must be untouched on failure, got %s", res.Status)
	}
}

func TestRejectRequiresNotes(t *testing.T) {
	res := pendingReservation()
	err := Transition(res, ActionReject, admin, "  ")
	var fieldErrs ValidationError
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if _, ok := fieldErrs["adminNotes"]; !ok {
		t.Fatalf("expected an adminNotes field error, got %v", fieldErrs)
	}
	if res.Status != models.ReservationPending {
		t.Fatalf("status must be untouched on failure, got %s", res.Status)
	}
}

func TestRejectWithNotes(t *testing.T) {
	res := pendingReservation()
	if err := Transition(res, ActionReject, admin, "area under maintenance"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if res.Status != models.ReservationRejected {
		t.Fatalf("expected rejected, got %s", res.Status)
	}
	if res.AdminNotes != "area under maintenance" {
		t.Fatalf("notes not recorded: %q", res.AdminNotes)
	}
}

func TestCancel(t *testing.T) {
	t.Run("requester cancels pending", func(t *testing.T) {
		res := pendingReservation()
		if err := Transition(res, ActionCancel, requester, ""); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if res.Status != models.ReservationCancelled {
			t.Fatalf("expected cancelled, got %s", res.Status)
		}
	})

	t.Run("admin cancels approved", func(t *testing.T) {
		res := pendingReservation()
		Transition(res, ActionApprove, admin, "")
		if err := Transition(res, ActionCancel, admin, "plumbing failure"); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if res.Status != models.ReservationCancelled {
			t.Fatalf("expected cancelled, got %s", res.Status)
		}
	})

	t.Run("stranger may not cancel", func(t *testing.T) {
		res := pendingReservation()
		if err := Transition(res, ActionCancel, stranger, ""); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		for _, status := range []models.ReservationStatus{
			models.ReservationRejected,
			models.ReservationCancelled,
			models.ReservationCompleted,
		} {
			res := pendingReservation()
			res.Status = status
			if err := Transition(res, ActionCancel, admin, ""); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("cancel from %s: expected ErrInvalidTransition, got %v", status, err)
			}
		}
	})
}

func TestNoManualCompletion(t *testing.T) {
	res := pendingReservation()
	err := Transition(res, Action("complete"), admin, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown action, got %v", err)
	}
}

func TestIsEffectivelyCompleted(t *testing.T) {
	res := pendingReservation()
	Transition(res, ActionApprove, admin, "")

	before := time.Date(2025, time.June, 2, 11, 0, 0, 0, time.UTC)
	after := time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC)

	if IsEffectivelyCompleted(res, before) {
		t.Fatal("reservation still running must not be completed")
	}
	if !IsEffectivelyCompleted(res, after) {
		t.Fatal("approved reservation past its end must project completed")
	}

	res.Status = models.ReservationPending
	if IsEffectivelyCompleted(res, after) {
		t.Fatal("only approved reservations project completed")
	}
}
