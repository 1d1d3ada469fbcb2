package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	"github.com/WorkshopServices01/workshop-api/internal/config"
	"github.com/WorkshopServices01/workshop-api/internal/handlers"
	"github.com/WorkshopServices01/workshop-api/internal/middleware"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
	"github.com/WorkshopServices01/workshop-api/internal/payments"
	"github.com/WorkshopServices01/workshop-api/internal/storage"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notifyDispatcher := notify.NewDispatcher(map[string]notify.Notifier{
		models.ChannelEmail:    notify.NewEmailSender(cfg),
		models.ChannelWhatsApp: notify.NewWhatsAppSender(cfg),
	})

	store := newStorage(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	gateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken)
	if err != nil {
		logrus.Fatalf("failed to configure payment gateway: %v", err)
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	customerHandler := handlers.NewCustomerHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	partHandler := handlers.NewPartHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)

	workOrderHandler := handlers.NewWorkOrderHandler(db, auditDispatcher, notifyDispatcher)
	approvalHandler := handlers.NewApprovalHandler(db, cfg, auditDispatcher, notifyDispatcher)
	invoiceHandler := handlers.NewInvoiceHandler(db, auditDispatcher, cfg.TaxRate, gateway)
	mediaHandler := handlers.NewMediaHandler(db, store, auditDispatcher)

	publicHandler := handlers.NewPublicHandler(db, store, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (token-gated, no login)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.PublicRateLimit(rdb, cfg.RateLimitPerMinute))
		{
			publicAPI.GET("/approvals/:token", publicHandler.GetApproval)
			publicAPI.POST("/approvals/:token/decision", publicHandler.Decide)
			publicAPI.GET("/approvals/:token/media/:mediaID", publicHandler.GetMedia)
		}

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
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers", customerHandler.List)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.PATCH("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)

			secured.POST("/vehicles", vehicleHandler.Create)
			secured.GET("/vehicles", vehicleHandler.List)
			secured.GET("/vehicles/:id", vehicleHandler.Get)
			secured.PATCH("/vehicles/:id", vehicleHandler.Update)
			secured.DELETE("/vehicles/:id", vehicleHandler.Delete)

			secured.POST("/parts", partHandler.Create)
			secured.GET("/parts", partHandler.List)
			secured.PATCH("/parts/:id", partHandler.Update)

			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services", serviceHandler.List)
			secured.PATCH("/services/:id", serviceHandler.Update)

			// ------------------------------
			// WORK ORDERS
			// ------------------------------
			secured.POST("/work-orders", workOrderHandler.Create)
			secured.GET("/work-orders", workOrderHandler.List)
			secured.GET("/work-orders/:id", workOrderHandler.Get)
			secured.PATCH("/work-orders/:id/estimate", workOrderHandler.SetEstimate)
			secured.PATCH("/work-orders/:id/schedule", workOrderHandler.Schedule)
			secured.POST("/work-orders/:id/start", workOrderHandler.Start)
			secured.POST("/work-orders/:id/finish", workOrderHandler.Finish)
			secured.POST("/work-orders/:id/close", middleware.RequireAdmin(), workOrderHandler.Close)
			secured.DELETE("/work-orders/:id", workOrderHandler.Delete)

			secured.POST("/work-orders/:id/items", workOrderHandler.AddItem)
			secured.DELETE("/work-orders/:id/items/:itemID", workOrderHandler.RemoveItem)
			secured.POST("/work-orders/:id/services", workOrderHandler.AttachService)

			secured.POST("/work-orders/:id/approvals", approvalHandler.Issue)
			secured.GET("/work-orders/:id/approvals", approvalHandler.ListForWorkOrder)

			secured.POST("/work-orders/:id/media", mediaHandler.Upload)
			secured.GET("/work-orders/:id/media", mediaHandler.List)
			secured.GET("/work-orders/:id/media/:mediaID", mediaHandler.Download)
			secured.DELETE("/work-orders/:id/media/:mediaID", mediaHandler.Delete)

			// ------------------------------
			// INVOICES
			// ------------------------------
			secured.POST("/invoices", invoiceHandler.Create)
			secured.GET("/invoices/:id", invoiceHandler.Get)
			secured.POST("/invoices/:id/payments", invoiceHandler.ApplyPayment)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

func newStorage(cfg *config.Config) storage.Storage {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3(cfg)
	}

	store, err := storage.NewLocal(cfg.StorageDir)
	if err != nil {
		logrus.Fatalf("failed to initialize local storage: %v", err)
	}
	return store
}
