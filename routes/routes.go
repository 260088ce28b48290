package routes

import (
	"crmhub-backend/config"
	"crmhub-backend/controllers"
	"crmhub-backend/utils"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())
	r.Use(utils.MetricsMiddleware())

	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", utils.MetricsHandler())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/password-reset", controllers.RequestPasswordReset)
		auth.POST("/password-reset/confirm", controllers.ConfirmPasswordReset)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		contacts := api.Group("/contacts")
		{
			contacts.POST("", controllers.CreateContact)
			contacts.GET("", controllers.GetContacts)
			contacts.GET("/:id", controllers.GetContact)
			contacts.PUT("/:id", controllers.UpdateContact)
			contacts.PATCH("/:id", controllers.UpdateContact)
			contacts.DELETE("/:id", controllers.DeleteContact)
		}

		companies := api.Group("/companies")
		{
			companies.POST("", controllers.CreateCompany)
			companies.GET("", controllers.GetCompanies)
			companies.GET("/:id", controllers.GetCompany)
			companies.PUT("/:id", controllers.UpdateCompany)
			companies.PATCH("/:id", controllers.UpdateCompany)
			companies.DELETE("/:id", controllers.DeleteCompany)
		}

		deals := api.Group("/deals")
		{
			deals.POST("", controllers.CreateDeal)
			deals.GET("", controllers.GetDeals)
			deals.GET("/:id", controllers.GetDeal)
			deals.PUT("/:id", controllers.UpdateDeal)
			deals.PATCH("/:id", controllers.UpdateDeal)
			deals.DELETE("/:id", controllers.DeleteDeal)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", controllers.CreateTask)
			tasks.GET("", controllers.GetTasks)
			tasks.GET("/:id", controllers.GetTask)
			tasks.PUT("/:id", controllers.UpdateTask)
			tasks.PATCH("/:id", controllers.UpdateTask)
			tasks.DELETE("/:id", controllers.DeleteTask)
		}

		notes := api.Group("/notes")
		{
			notes.POST("", controllers.CreateNote)
			notes.GET("", controllers.GetNotes)
			notes.GET("/:id", controllers.GetNote)
			notes.PUT("/:id", controllers.UpdateNote)
			notes.PATCH("/:id", controllers.UpdateNote)
			notes.DELETE("/:id", controllers.DeleteNote)
		}

		// Append-only audit trail: no update or delete routes
		activities := api.Group("/activities")
		{
			activities.POST("", controllers.CreateActivity)
			activities.GET("", controllers.GetActivities)
			activities.GET("/:id", controllers.GetActivity)
		}

		quotes := api.Group("/quotes")
		{
			quotes.POST("", controllers.CreateQuote)
			quotes.GET("", controllers.GetQuotes)
			quotes.GET("/:id", controllers.GetQuote)
			quotes.PUT("/:id", controllers.UpdateQuote)
			quotes.PATCH("/:id", controllers.UpdateQuote)
			quotes.DELETE("/:id", controllers.DeleteQuote)
		}

		users := api.Group("/users")
		{
			users.POST("", controllers.CreateUser)
			users.GET("", controllers.GetUsers)
			users.GET("/:id", controllers.GetUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.PATCH("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		workspaces := api.Group("/workspaces")
		{
			workspaces.POST("", controllers.CreateWorkspace)
			workspaces.GET("", controllers.GetWorkspaces)
			workspaces.GET("/:id", controllers.GetWorkspace)
			workspaces.PUT("/:id", controllers.UpdateWorkspace)
			workspaces.PATCH("/:id", controllers.UpdateWorkspace)
			workspaces.DELETE("/:id", controllers.DeleteWorkspace)
		}

		api.GET("/dashboard", controllers.GetDashboardOverview)

		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)
	}

	return r
}
