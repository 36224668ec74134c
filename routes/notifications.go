package routes

import (
	"condominium-server/models"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/notifications — the caller's notification feed, newest first.
func GetMyNotifications(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var notifications []models.Notification
	if err := storage.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": notifications})
}
