// routes/reservation.go
package routes

import (
	"time"

	"condominium-server/models"
	"condominium-server/scheduling"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	CommonAreaID       uint   `json:"commonAreaId" validate:"required"`
	ReservationDate    string `json:"reservationDate" validate:"required"`
	StartTime          string `json:"startTime" validate:"required"`
	EndTime            string `json:"endTime" validate:"required"`
	Purpose            string `json:"purpose" validate:"required"`
	EstimatedAttendees int    `json:"estimatedAttendees" validate:"required,min=1"`
}

type QuoteInput struct {
	CommonAreaID uint   `json:"commonAreaId" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
}

func parseReservationInput(ctx iris.Context, input *CreateReservationInput) (*scheduling.Request, bool) {
	if err := ctx.ReadJSON(input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return nil, false
	}
	date, err := time.Parse("2006-01-02", input.ReservationDate)
	if err != nil {
		utils.JSONFieldErrors(ctx, iris.StatusBadRequest, map[string]string{
			"reservationDate": "must be formatted YYYY-MM-DD",
		})
		return nil, false
	}
	return &scheduling.Request{
		CommonAreaID:       input.CommonAreaID,
		ReservationDate:    date,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		Purpose:            input.Purpose,
		EstimatedAttendees: input.EstimatedAttendees,
	}, true
}

func CreateReservation(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateReservationInput
	req, ok := parseReservationInput(ctx, &input)
	if !ok {
		return
	}

	var area models.CommonArea
	if err := storage.DB.First(&area, req.CommonAreaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "common area not found")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	result := scheduling.ValidateRequest(*req, &area, time.Now())
	if !result.Ok() {
		utils.JSONFieldErrors(ctx, iris.StatusBadRequest, result.Errors)
		return
	}

	hours, cost := scheduling.Quote(req.StartTime, req.EndTime, area.CostPerHour)
	reservation := models.Reservation{
		Reference:          uuid.NewString(),
		CommonAreaID:       area.ID,
		UserID:             userID,
		ReservationDate:    req.ReservationDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Purpose:            req.Purpose,
		EstimatedAttendees: req.EstimatedAttendees,
		Status:             models.ReservationPending,
		TotalHours:         hours,
		TotalCost:          cost,
	}

	// The grid already hid occupied slots, but the at-most-one-occupant
	// invariant is re-checked here inside a transaction so a stale client
	// cannot double-book.
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkSlotConflict(tx, &reservation); err != nil {
			return err
		}
		return tx.Create(&reservation).Error
	})
	if txErr != nil {
		if txErr == scheduling.ErrConflict {
			utils.JSONError(ctx, iris.StatusConflict, "slot_conflict", "The selected time slot is no longer available")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	storage.InvalidateAvailability(area.ID)

	response := iris.Map{"data": reservation}
	if len(result.Warnings) > 0 {
		response["warnings"] = result.Warnings
	}
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(response)
}

// checkSlotConflict enforces the at-most-one-occupant rule: no pending or
// approved reservation may overlap the candidate's [start, end) range on
// the same date. "HH:MM" strings compare correctly as text.
func checkSlotConflict(tx *gorm.DB, candidate *models.Reservation) error {
	var overlapping int64
	err := tx.Model(&models.Reservation{}).
		Where("id != ? AND common_area_id = ? AND reservation_date = ? AND status IN ?",
			candidate.ID, candidate.CommonAreaID, candidate.ReservationDate,
			[]models.ReservationStatus{models.ReservationPending, models.ReservationApproved}).
		Where("start_time < ? AND end_time > ?", candidate.EndTime, candidate.StartTime).
		Count(&overlapping).Error
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return scheduling.ErrConflict
	}
	return nil
}

// QuoteReservation returns the price preview for a start/end selection
// without persisting anything.
func QuoteReservation(ctx iris.Context) {
	var input QuoteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var area models.CommonArea
	if err := storage.DB.First(&area, input.CommonAreaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "common area not found")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	hours, cost := scheduling.Quote(input.StartTime, input.EndTime, area.CostPerHour)
	ctx.JSON(iris.Map{
		"data": iris.Map{
			"totalHours":  hours,
			"totalCost":   cost,
			"costPerHour": area.CostPerHour,
		},
	})
}

func GetMyReservations(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	q := storage.DB.Where("user_id = ?", userID)
	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := q.Preload("CommonArea").Order("reservation_date DESC, start_time DESC").Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": reservations})
}

func GetReservation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("CommonArea").Preload("User").First(&reservation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "reservation not found")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	actor := utils.RequestActor(ctx)
	if !actor.Admin && reservation.UserID != actor.UserID {
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "You don't have access to this reservation")
		return
	}

	ctx.JSON(iris.Map{
		"data":                 reservation,
		"effectivelyCompleted": scheduling.IsEffectivelyCompleted(&reservation, time.Now()),
	})
}

// CancelReservation lets the requester or an administrator cancel a
// pending or approved reservation.
func CancelReservation(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	ctx.ReadJSON(&body) // body is optional for cancellations

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "reservation not found")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	actor := utils.RequestActor(ctx)
	before := reservation
	if err := scheduling.Transition(&reservation, scheduling.ActionCancel, actor, body.Reason); err != nil {
		respondTransitionError(ctx, err)
		return
	}

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(reservation.CommonAreaID)
	utils.Audit(ctx, "reservation.cancel", "reservation", reservation.ID, before, reservation)
	ctx.JSON(iris.Map{"data": reservation})
}
