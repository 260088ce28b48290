package main

import (
	"crmhub-backend/config"
	"crmhub-backend/models"
	"crmhub-backend/routes"
	"crmhub-backend/services"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()
	config.ConnectCache()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Contact{},
		&models.Company{},
		&models.Deal{},
		&models.Task{},
		&models.Note{},
		&models.Activity{},
		&models.Quote{},
		&models.QuoteItem{},
		&models.HealthProbe{},
	)
}

func main() {
	nudges := services.NewNudgeService(config.DB)
	nudges.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
