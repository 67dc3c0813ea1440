package main

import (
	"log"
	"os"

	_ "nexusorder/api/swagger" // swagger docs
	"nexusorder/internal/database"
	"nexusorder/internal/extract"
	"nexusorder/internal/handler"
	"nexusorder/internal/middleware"
	"nexusorder/internal/repository"
	"nexusorder/internal/service"
	"nexusorder/internal/websocket"
	"nexusorder/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           NexusOrder API
// @version         1.0
// @description     Order management backend for service companies: orders, price lists, workflow, budget, and exports.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	zapLogger := logger.Must(logger.New())
	defer func() { _ = zapLogger.Sync() }()

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	zapLogger.Info("connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	orderRepo := repository.NewOrderRepository(db)
	priceRepo := repository.NewPriceListRepository(db)
	workflowRepo := repository.NewWorkflowStatusRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	clientRepo := repository.NewClientRepository(db)
	contractorRepo := repository.NewContractorRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	catalogRepo := repository.NewServiceCatalogRepository(db)

	// Services
	orderService := service.NewOrderService(orderRepo, priceRepo, workflowRepo, auditRepo, txManager, wsHub, zapLogger)
	priceService := service.NewPriceListService(priceRepo, auditRepo, txManager, zapLogger)
	dashboardService := service.NewDashboardService(orderRepo, zapLogger)
	workflowService := service.NewWorkflowService(workflowRepo, auditRepo, txManager)
	budgetService := service.NewBudgetService(budgetRepo, orderRepo, auditRepo, txManager, zapLogger)
	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(auditRepo)
	clientService := service.NewClientService(clientRepo, auditRepo, txManager)
	contractorService := service.NewContractorService(contractorRepo, auditRepo, txManager)
	companyService := service.NewCompanyService(companyRepo, auditRepo, txManager)
	unitService := service.NewUnitService(unitRepo, auditRepo, txManager)
	catalogService := service.NewServiceCatalogService(catalogRepo, auditRepo, txManager)
	extractor := extract.NewClient(os.Getenv("ANTHROPIC_API_KEY"))

	// Handlers
	orderHandler := handler.NewOrderHandler(orderService)
	priceHandler := handler.NewPriceListHandler(priceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	masterDataHandler := handler.NewMasterDataHandler(clientService, contractorService, companyService, unitService, catalogService)
	exportHandler := handler.NewExportHandler(orderService)
	extractHandler := handler.NewExtractHandler(extractor, zapLogger)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// API Routing
	root := router.Group("")
	userHandler.RegisterRoutes(root)
	orderHandler.RegisterRoutes(root)
	priceHandler.RegisterRoutes(root)
	dashboardHandler.RegisterRoutes(root)
	workflowHandler.RegisterRoutes(root)
	budgetHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	masterDataHandler.RegisterRoutes(root)
	exportHandler.RegisterRoutes(root)
	extractHandler.RegisterRoutes(root)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zapLogger.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zapLogger.Fatal("server failed", zap.Error(err))
	}
}
