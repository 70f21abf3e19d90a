package routes

import (
	"entity-tracker-backend/internal/api/handlers"
	"entity-tracker-backend/internal/api/middleware"
	"entity-tracker-backend/internal/config"
	"entity-tracker-backend/internal/repository"
	"entity-tracker-backend/internal/service"
	"entity-tracker-backend/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, blobs storage.BlobStore, sealer service.CredentialSealer) *gin.Engine {
	// Create router
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := service.NewValidator()

	// Initialize repositories
	entityRepo := repository.NewEntityRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Initialize services
	entityService := service.NewEntityService(entityRepo, blobs, validator)
	accountService := service.NewAccountService(accountRepo, sealer, validator)
	taskService := service.NewTaskService(taskRepo, validator)
	documentService := service.NewDocumentService(documentRepo, blobs, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.StorageBackend)
	entityHandler := handlers.NewEntityHandler(entityService)
	accountHandler := handlers.NewAccountHandler(accountService)
	taskHandler := handlers.NewTaskHandler(taskService)
	documentHandler := handlers.NewDocumentHandler(documentService, cfg.MaxUploadBytes)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Health check routes
		api.GET("/health", healthHandler.Health)
		api.GET("/health/ready", healthHandler.Ready)
		api.GET("/health/live", healthHandler.Live)
		api.GET("/info", healthHandler.Info)

		// Entity routes
		entities := api.Group("/entities")
		{
			entities.GET("", entityHandler.ListEntities)
			entities.POST("", entityHandler.CreateEntity)
			entities.GET("/:id", entityHandler.GetEntity)
			entities.PUT("/:id", entityHandler.UpdateEntity)
			entities.PATCH("/:id", entityHandler.UpdateEntity)
			entities.DELETE("/:id", entityHandler.DeleteEntity)

			entities.GET("/:id/accounts", accountHandler.ListEntityAccounts)
			entities.POST("/:id/accounts", accountHandler.CreateAccount)
			entities.GET("/:id/tasks", taskHandler.ListEntityTasks)
			entities.POST("/:id/tasks", taskHandler.CreateTask)
			entities.GET("/:id/documents", documentHandler.ListEntityDocuments)
			entities.POST("/:id/documents", documentHandler.UploadDocument)
		}

		// Account routes
		accounts := api.Group("/accounts")
		{
			accounts.GET("/:id", accountHandler.GetAccount)
			accounts.PUT("/:id", accountHandler.UpdateAccount)
			accounts.PATCH("/:id", accountHandler.UpdateAccount)
			accounts.DELETE("/:id", accountHandler.DeleteAccount)
			accounts.GET("/:id/credentials", accountHandler.GetCredentials)
		}

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Document routes
		documents := api.Group("/documents")
		{
			documents.GET("/:id", documentHandler.GetDocument)
			documents.PUT("/:id", documentHandler.UpdateDocument)
			documents.PATCH("/:id", documentHandler.UpdateDocument)
			documents.DELETE("/:id", documentHandler.DeleteDocument)
			documents.GET("/:id/download", documentHandler.DownloadDocument)
			documents.GET("/:id/view", documentHandler.ViewDocument)
		}
	}

	return router
}
