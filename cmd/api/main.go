package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jobvibe/jobvibe-api/internal/config"
	"github.com/jobvibe/jobvibe-api/internal/database"
	"github.com/jobvibe/jobvibe-api/internal/handlers"
	"github.com/jobvibe/jobvibe-api/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
	cfg := config.Load()

	// 2. Database Connections (applications store + resumes store)
	appsDB, resumesDB := database.Connect(cfg)
	if cfg.SeedDemoData {
		database.SeedDemoData(appsDB)
	}

	// 3. Initialize Core Services (Dependencies)
	chatService := services.NewChatService(cfg)
	latexService := services.NewLatexService(chatService.Client, cfg.UpstreamTimeout)
	applicationService := services.NewApplicationService(appsDB)
	communicationService := services.NewCommunicationService(appsDB)
	reminderService := services.NewReminderService(appsDB)
	resumeService := services.NewResumeService(resumesDB, latexService)
	sessionService := services.NewChatSessionService(appsDB, resumesDB)
	autofillService := services.NewAutofillService(appsDB, chatService)

	// 4. Initialize Handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	communicationHandler := handlers.NewCommunicationHandler(communicationService, chatService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	resumeHandler := handlers.NewResumeHandler(resumeService, latexService)
	aiHandler := handlers.NewAIHandler(chatService, sessionService, resumeService, applicationService)
	autofillHandler := handlers.NewAutofillHandler(autofillService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/applications", applicationHandler.List)
		api.POST("/applications", applicationHandler.Create)
		api.GET("/applications/:id", applicationHandler.Get)
		api.PATCH("/applications/:id", applicationHandler.Update)
		api.DELETE("/applications/:id", applicationHandler.Delete)

		api.GET("/communications", communicationHandler.List)
		api.POST("/communications", communicationHandler.Create)
		api.GET("/communications/tracking/summary", communicationHandler.TrackingSummary)
		api.GET("/communications/tracking/statistics", communicationHandler.TrackingStatistics)
		api.POST("/communications/process-image", communicationHandler.ProcessImage)
		api.GET("/communications/:id", communicationHandler.Get)
		api.PATCH("/communications/:id", communicationHandler.Update)
		api.DELETE("/communications/:id", communicationHandler.Delete)

		api.GET("/reminders", reminderHandler.List)
		api.POST("/reminders", reminderHandler.Create)
		api.GET("/reminders/:id", reminderHandler.Get)
		api.PATCH("/reminders/:id", reminderHandler.Update)
		api.DELETE("/reminders/:id", reminderHandler.Delete)

		api.GET("/resumes", resumeHandler.List)
		api.POST("/resumes", resumeHandler.Create)
		api.POST("/resumes/upload", resumeHandler.Upload)
		api.GET("/resumes/templates/list", resumeHandler.Templates)
		api.GET("/resumes/templates/:id/preview", resumeHandler.TemplatePreview)
		api.GET("/resumes/:id", resumeHandler.Get)
		api.PATCH("/resumes/:id", resumeHandler.Update)
		api.DELETE("/resumes/:id", resumeHandler.Delete)
		api.GET("/resumes/:id/file", resumeHandler.File)
		api.GET("/resumes/:id/latex", resumeHandler.GetLatex)
		api.PUT("/resumes/:id/latex", resumeHandler.PutLatex)
		api.POST("/resumes/:id/set-master", resumeHandler.SetMaster)
		api.POST("/resumes/:id/unset-master", resumeHandler.UnsetMaster)
		api.POST("/resumes/:id/apply-template", resumeHandler.ApplyTemplate)

		api.POST("/ai/chat", aiHandler.Chat)
		api.POST("/ai/critique-resume", aiHandler.CritiqueResume)
		api.POST("/ai/start-interview", aiHandler.StartInterview)
		api.POST("/ai/rate-answer", aiHandler.RateAnswer)
		api.GET("/ai/sessions", aiHandler.ListSessions)
		api.POST("/ai/sessions", aiHandler.CreateSession)
		api.GET("/ai/sessions/:id", aiHandler.GetSession)
		api.PUT("/ai/sessions/:id", aiHandler.UpdateSession)
		api.DELETE("/ai/sessions/:id", aiHandler.DeleteSession)

		api.POST("/autofill/parse", autofillHandler.Parse)
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
