package routes

import (
	"errors"
	"net/http"
	"time"

	"condominium-server/models"
	"condominium-server/scheduling"
	"condominium-server/services"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/reservations
func AdminListReservations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	areaID := ctx.URLParamDefault("common_area_id", "")
	userID := ctx.URLParamDefault("user_id", "")
	dateFrom := ctx.URLParamDefault("date_from", "")
	dateTo := ctx.URLParamDefault("date_to", "")

	q := storage.DB.Model(&models.Reservation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if areaID != "" {
		q = q.Where("common_area_id = ?", areaID)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			q = q.Where("reservation_date >= ?", t)
		}
	}
	if dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			q = q.Where("reservation_date <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var items []models.Reservation
	if err := q.Preload("CommonArea").Preload("User").Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&items).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, items, page, perPage, total)
}

// POST /api/admin/reservations/{id}/approve { adminNotes? }
func AdminApproveReservation(ctx iris.Context) {
	adminTransition(ctx, scheduling.ActionApprove)
}

// POST /api/admin/reservations/{id}/reject { adminNotes } — notes required
func AdminRejectReservation(ctx iris.Context) {
	adminTransition(ctx, scheduling.ActionReject)
}

func adminTransition(ctx iris.Context, action scheduling.Action) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		AdminNotes string `json:"adminNotes"`
	}
	ctx.ReadJSON(&body) // notes are optional for approval

	var reservation models.Reservation
	if err := storage.DB.Preload("CommonArea").Preload("User").First(&reservation, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "reservation not found")
		return
	}

	actor := utils.RequestActor(ctx)
	before := reservation
	if err := scheduling.Transition(&reservation, action, actor, body.AdminNotes); err != nil {
		respondTransitionError(ctx, err)
		return
	}

	if err := storage.DB.Save(&reservation).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	storage.InvalidateAvailability(reservation.CommonAreaID)
	utils.Audit(ctx, "reservation."+string(action), "reservation", reservation.ID, before, reservation)
	services.NotifyReservationDecision(&reservation, &reservation.User)
	ctx.JSON(iris.Map{"data": reservation})
}

// respondTransitionError maps state machine failures onto HTTP statuses.
func respondTransitionError(ctx iris.Context, err error) {
	var fieldErrs scheduling.ValidationError
	switch {
	case errors.As(err, &fieldErrs):
		utils.JSONFieldErrors(ctx, http.StatusUnprocessableEntity, fieldErrs)
	case errors.Is(err, scheduling.ErrInvalidTransition):
		utils.JSONError(ctx, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, scheduling.ErrForbidden):
		utils.JSONError(ctx, http.StatusForbidden, "forbidden", err.Error())
	default:
		utils.CreateInternalServerError(ctx)
	}
}
