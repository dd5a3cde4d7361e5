package routes

import (
	"net/http"

	"dietchat-backend/controllers"
	"dietchat-backend/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Meal        *controllers.MealController
	Chat        *controllers.ChatController
	Consumption *controllers.ConsumptionController
	Realtime    *controllers.RealtimeController
}

func Setup(r *gin.Engine, ctl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/mfa/verify", ctl.Auth.VerifyMFA)
		auth.POST("/forgot-password", ctl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctl.Auth.ResetPassword)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		user := api.Group("/user")
		{
			user.GET("/me", ctl.User.Me)
			user.GET("/profile", ctl.User.GetProfile)
			user.PUT("/profile", ctl.User.UpsertProfile)
			user.POST("/avatar", ctl.User.UploadAvatar)
			user.PUT("/mfa", ctl.User.ToggleMFA)
		}

		meals := api.Group("/meals")
		{
			meals.GET("", ctl.Meal.List)
			meals.POST("", ctl.Meal.Create)
			meals.GET("/distribution", ctl.Meal.Distribution)
			meals.POST("/validate", ctl.Meal.Validate)
			meals.GET("/:id", ctl.Meal.Get)
			meals.PUT("/:id", ctl.Meal.Update)
			meals.DELETE("/:id", ctl.Meal.Delete)
		}

		chat := api.Group("/chat")
		{
			chat.POST("", ctl.Chat.Send)
			chat.GET("/history", ctl.Chat.History)
		}

		consumption := api.Group("/consumption")
		{
			consumption.POST("/toggle", ctl.Consumption.Toggle)
			consumption.GET("/day", ctl.Consumption.Day)
			consumption.GET("/streak", ctl.Consumption.Streak)
		}

		api.GET("/ws", ctl.Realtime.Connect)
	}
}
