package main

import (
	"os"

	"condominium-server/routes"
	"condominium-server/storage"
	"condominium-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	user := app.Party("/api/users")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	areas := app.Party("/api/common-areas")
	{
		areas.Get("/", routes.ListCommonAreas)
		areas.Get("/{id:uint}", routes.GetCommonArea)
		areas.Get("/{id:uint}/availability", routes.GetCommonAreaAvailability)

		adminAreas := areas.Party("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
		{
			adminAreas.Post("/", routes.CreateCommonArea)
			adminAreas.Put("/{id:uint}", routes.UpdateCommonArea)
			adminAreas.Delete("/{id:uint}", routes.DeleteCommonArea)
		}
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		reservations.Post("/", routes.CreateReservation)
		reservations.Post("/quote", routes.QuoteReservation)
		reservations.Get("/", routes.GetMyReservations)
		reservations.Get("/{id:uint}", routes.GetReservation)
		reservations.Post("/{id:uint}/cancel", routes.CancelReservation)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		notifications.Get("/", routes.GetMyNotifications)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Post("/reservations/{id:uint}/approve", routes.AdminApproveReservation)
		admin.Post("/reservations/{id:uint}/reject", routes.AdminRejectReservation)
	}

	app.Listen(":8080")
}
