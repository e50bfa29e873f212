package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	"github.com/autoline-kr/dealer-backoffice/internal/config"
	"github.com/autoline-kr/dealer-backoffice/internal/dashboard"
	"github.com/autoline-kr/dealer-backoffice/internal/handlers"
	infraRepo "github.com/autoline-kr/dealer-backoffice/internal/infra/repository"
	"github.com/autoline-kr/dealer-backoffice/internal/middleware"
	"github.com/autoline-kr/dealer-backoffice/internal/notify"
	"github.com/autoline-kr/dealer-backoffice/internal/storage"
	ucContract "github.com/autoline-kr/dealer-backoffice/internal/usecase/contract"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, cache *redis.Client, log zerolog.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	contractRepo := infraRepo.NewContractGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	mailer := notify.NewMailer(cfg)
	notifyDispatcher := notify.NewDispatcher(mailer, log)

	uploader := storage.NewS3Uploader(cfg)

	dashboardService := dashboard.NewService(db, cache, log)

	// ======================================================
	// USE CASES — CONTRACTS
	// ======================================================
	createContractUC := ucContract.NewCreateContract(
		contractRepo,
		auditDispatcher,
		log,
	)

	updateContractUC := ucContract.NewUpdateContract(
		contractRepo,
		auditDispatcher,
		notifyDispatcher,
		log,
	)

	updateContractStatusUC := ucContract.NewUpdateContractStatus(
		contractRepo,
		auditDispatcher,
		log,
	)

	deleteContractUC := ucContract.NewDeleteContract(
		contractRepo,
		auditDispatcher,
		log,
	)

	listContractsUC := ucContract.NewListContracts(
		contractRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, uploader)
	customerHandler := handlers.NewCustomerHandler(db)
	carHandler := handlers.NewCarHandler(db, uploader)
	companyHandler := handlers.NewCompanyHandler(db)
	documentHandler := handlers.NewDocumentHandler(db, uploader, auditDispatcher)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	contractHandler := handlers.NewContractHandler(
		createContractUC,
		updateContractUC,
		updateContractStatusUC,
		deleteContractUC,
		listContractsUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", userHandler.GetMe)
			secured.PATCH("/me", userHandler.UpdateMe)
			secured.POST("/me/image", userHandler.UploadProfileImage)

			secured.GET("/users", userHandler.List)

			secured.GET("/company", companyHandler.Get)
			secured.PATCH("/company", companyHandler.Update)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.PATCH("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)

			// ------------------------------
			// CARS
			// ------------------------------
			secured.GET("/cars", carHandler.List)
			secured.POST("/cars", carHandler.Create)
			secured.GET("/cars/models", carHandler.ListModels)
			secured.POST("/cars/import", carHandler.ImportCSV)
			secured.GET("/cars/:id", carHandler.Get)
			secured.PATCH("/cars/:id", carHandler.Update)
			secured.DELETE("/cars/:id", carHandler.Delete)
			secured.POST("/cars/:id/image", carHandler.UploadImage)

			// ------------------------------
			// CONTRACTS
			// ------------------------------
			secured.GET("/contracts", contractHandler.List)
			secured.POST("/contracts", contractHandler.Create)
			secured.PATCH("/contracts/:id", contractHandler.Update)
			secured.DELETE("/contracts/:id", contractHandler.Delete)

			// ------------------------------
			// DOCUMENTS
			// ------------------------------
			secured.GET("/contract-documents", documentHandler.List)
			secured.POST("/contract-documents", documentHandler.Upload)
			secured.DELETE("/contract-documents/:id", documentHandler.Delete)

			secured.GET("/dashboard", dashboardHandler.Get)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
