package routes

import (
	"condominium-server/models"
	"condominium-server/scheduling"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CommonAreaInput struct {
	Name        string  `json:"name" validate:"required,max=256"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" validate:"min=0"`
	CostPerHour float64 `json:"costPerHour" validate:"min=0"`

	IsActive     *bool `json:"isActive"`
	IsReservable *bool `json:"isReservable"`

	AvailableFrom string `json:"availableFrom" validate:"required"`
	AvailableTo   string `json:"availableTo" validate:"required"`

	AvailableMonday    *bool `json:"availableMonday"`
	AvailableTuesday   *bool `json:"availableTuesday"`
	AvailableWednesday *bool `json:"availableWednesday"`
	AvailableThursday  *bool `json:"availableThursday"`
	AvailableFriday    *bool `json:"availableFriday"`
	AvailableSaturday  *bool `json:"availableSaturday"`
	AvailableSunday    *bool `json:"availableSunday"`

	MaxReservationHours    int `json:"maxReservationHours" validate:"min=1"`
	AdvanceReservationDays int `json:"advanceReservationDays" validate:"min=0"`
}

// validateOperatingWindow checks the daily window beyond what struct tags
// can express: both bounds must parse and close strictly after opening.
func validateOperatingWindow(input *CommonAreaInput) map[string]string {
	fields := map[string]string{}
	from, errFrom := scheduling.ParseClock(input.AvailableFrom)
	if errFrom != nil {
		fields["availableFrom"] = "must be a valid HH:MM time"
	}
	to, errTo := scheduling.ParseClock(input.AvailableTo)
	if errTo != nil {
		fields["availableTo"] = "must be a valid HH:MM time"
	}
	if errFrom == nil && errTo == nil && !to.After(from) {
		fields["availableTo"] = "must be after availableFrom"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func applyCommonAreaInput(area *models.CommonArea, input *CommonAreaInput) {
	area.Name = input.Name
	area.Description = input.Description
	area.Capacity = input.Capacity
	area.CostPerHour = input.CostPerHour
	area.IsActive = boolOr(input.IsActive, true)
	area.IsReservable = boolOr(input.IsReservable, true)
	area.AvailableFrom = input.AvailableFrom
	area.AvailableTo = input.AvailableTo
	area.AvailableMonday = boolOr(input.AvailableMonday, true)
	area.AvailableTuesday = boolOr(input.AvailableTuesday, true)
	area.AvailableWednesday = boolOr(input.AvailableWednesday, true)
	area.AvailableThursday = boolOr(input.AvailableThursday, true)
	area.AvailableFriday = boolOr(input.AvailableFriday, true)
	area.AvailableSaturday = boolOr(input.AvailableSaturday, true)
	area.AvailableSunday = boolOr(input.AvailableSunday, true)
	area.MaxReservationHours = input.MaxReservationHours
	area.AdvanceReservationDays = input.AdvanceReservationDays
}

func ListCommonAreas(ctx iris.Context) {
	q := storage.DB.Model(&models.CommonArea{})
	if ctx.URLParamDefault("include_inactive", "") == "" {
		q = q.Where("is_active = ?", true)
	}

	var areas []models.CommonArea
	if err := q.Order("name ASC").Find(&areas).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": areas})
}

func GetCommonArea(ctx iris.Context) {
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
	ctx.JSON(iris.Map{"data": area})
}

func CreateCommonArea(ctx iris.Context) {
	var input CommonAreaInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if fields := validateOperatingWindow(&input); fields != nil {
		utils.JSONFieldErrors(ctx, iris.StatusBadRequest, fields)
		return
	}

	var area models.CommonArea
	applyCommonAreaInput(&area, &input)
	if err := storage.DB.Create(&area).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "common_area.create", "common_area", area.ID, nil, area)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": area})
}

func UpdateCommonArea(ctx iris.Context) {
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

	var input CommonAreaInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if fields := validateOperatingWindow(&input); fields != nil {
		utils.JSONFieldErrors(ctx, iris.StatusBadRequest, fields)
		return
	}

	before := area
	applyCommonAreaInput(&area, &input)
	if err := storage.DB.Save(&area).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(area.ID)
	utils.Audit(ctx, "common_area.update", "common_area", area.ID, before, area)
	ctx.JSON(iris.Map{"data": area})
}

func DeleteCommonArea(ctx iris.Context) {
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

	if err := storage.DB.Delete(&area).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(area.ID)
	utils.Audit(ctx, "common_area.delete", "common_area", area.ID, area, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
