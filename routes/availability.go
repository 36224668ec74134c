package routes

import (
	"encoding/json"
	"time"

	"condominium-server/models"
	"condominium-server/scheduling"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GET /api/common-areas/{id}/availability?week=YYYY-MM-DD
//
// Returns the 7-day grid starting at the Monday of the requested week,
// every slot classified against the area's pending and approved
// reservations. The grid is a pure function of the area, the reservation
// set and the clock, so it is safe to recompute on every call; a short
// Redis TTL only absorbs bursts.
func GetCommonAreaAvailability(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var area models.CommonArea
	if err := storage.DB.First(&area, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "common area not found")
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return
	}

	ref := time.Now()
	if weekStr := ctx.URLParamDefault("week", ""); weekStr != "" {
		parsed, parseErr := time.Parse("2006-01-02", weekStr)
		if parseErr != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_week", "week must be formatted YYYY-MM-DD")
			return
		}
		ref = parsed
	}
	weekStart := scheduling.WeekOf(ref)

	if cached := storage.GetCachedAvailability(area.ID, weekStart); cached != "" {
		ctx.ContentType("application/json")
		ctx.WriteString(cached)
		return
	}

	grid, err := buildAvailability(&area, weekStart, time.Now())
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	payload := iris.Map{
		"data":      grid,
		"weekStart": weekStart.Format("2006-01-02"),
		"area":      area,
	}
	if raw, marshalErr := json.Marshal(payload); marshalErr == nil {
		storage.CacheAvailability(area.ID, weekStart, string(raw))
	}
	ctx.JSON(payload)
}

// buildAvailability fetches the occupying reservations for the week and
// runs the scheduling core over them.
func buildAvailability(area *models.CommonArea, weekStart time.Time, now time.Time) ([]scheduling.DayAvailability, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	var reservations []models.Reservation
	err := storage.DB.
		Where("common_area_id = ? AND reservation_date >= ? AND reservation_date < ? AND status IN ?",
			area.ID, weekStart, weekEnd,
			[]models.ReservationStatus{models.ReservationPending, models.ReservationApproved}).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	days := scheduling.GenerateWeek(area, weekStart)
	return scheduling.ClassifyWeek(days, reservations, now), nil
}
