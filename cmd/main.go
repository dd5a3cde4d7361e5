package main

import (
	"log"
	"os"

	"dietchat-backend/config"
	"dietchat-backend/controllers"
	"dietchat-backend/routes"
	"dietchat-backend/services"
	"dietchat-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	mailer, err := utils.NewMailer()
	if err != nil {
		log.Printf("mailer disabled: %v", err)
		mailer = nil
	}
	uploader, err := utils.NewUploader()
	if err != nil {
		log.Printf("uploads disabled: %v", err)
		uploader = nil
	}

	hub := services.NewRealtimeHub()
	groq := services.NewGroqService()
	mealSvc := services.NewMealService(db)
	profileSvc := services.NewProfileService(db)
	authSvc := services.NewAuthService(db, mailer)
	chatSvc := services.NewChatService(db, groq, mealSvc, profileSvc, hub)
	consumptionSvc := services.NewConsumptionService(db)

	r := gin.Default()
	routes.Setup(r, routes.Controllers{
		Auth:        controllers.NewAuthController(authSvc),
		User:        controllers.NewUserController(db, profileSvc, authSvc, uploader),
		Meal:        controllers.NewMealController(mealSvc, profileSvc),
		Chat:        controllers.NewChatController(chatSvc),
		Consumption: controllers.NewConsumptionController(consumptionSvc),
		Realtime:    controllers.NewRealtimeController(hub),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
