package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/haeunkim/luthier-crm/docs"
	"github.com/haeunkim/luthier-crm/internal/adapter/api/controller"
	"github.com/haeunkim/luthier-crm/internal/adapter/api/route"
	"github.com/haeunkim/luthier-crm/internal/adapter/repository"
	"github.com/haeunkim/luthier-crm/internal/infrastructure/database"
	"github.com/haeunkim/luthier-crm/pkg/auth"
	"github.com/haeunkim/luthier-crm/pkg/logger"
	"github.com/haeunkim/luthier-crm/pkg/monitoring"
)

// App holds the application and its dependencies
type App struct {
	router *gin.Engine
	pool   *pgxpool.Pool
	logger logger.Logger
	guard  *auth.Guard

	clientController     *controller.ClientController
	instrumentController *controller.InstrumentController
	saleController       *controller.SaleController
	connectionController *controller.ConnectionController
	invoiceController    *controller.InvoiceController
	taskController       *controller.TaskController
}

// NewApp wires the database pool, repositories, the request guard and the
// controllers into a runnable application
func NewApp() (*App, error) {
	zapLog, err := zap.NewProduction()
	if err != nil {
		zapLog = zap.NewNop()
	}
	log := logger.NewFromZap(zapLog)

	config := database.NewPostgresConfigFromEnv()
	pool, err := database.NewPostgresPool(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	clientRepo := repository.NewClientRepository(pool)
	instrumentRepo := repository.NewInstrumentRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)
	connectionRepo := repository.NewConnectionRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	mode := auth.ParseRunMode(os.Getenv("APP_ENV"))
	reporter := monitoring.NewZapReporter(zapLog)

	var verifier auth.Verifier
	if baseURL, apiKey := os.Getenv("AUTH_BASE_URL"), os.Getenv("AUTH_API_KEY"); baseURL != "" && apiKey != "" {
		verifier, err = auth.NewHTTPVerifier(baseURL, apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to configure auth verifier: %w", err)
		}
	}

	allowBypass, _ := strconv.ParseBool(os.Getenv("E2E_BYPASS_AUTH"))
	guard := auth.NewGuard(mode, allowBypass, verifier, reporter, log)

	if mode == auth.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", auth.BypassHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return &App{
		router:               router,
		pool:                 pool,
		logger:               log,
		guard:                guard,
		clientController:     controller.NewClientController(clientRepo, log),
		instrumentController: controller.NewInstrumentController(instrumentRepo, log),
		saleController:       controller.NewSaleController(saleRepo, clientRepo, instrumentRepo, log),
		connectionController: controller.NewConnectionController(connectionRepo, log),
		invoiceController:    controller.NewInvoiceController(invoiceRepo, log),
		taskController:       controller.NewTaskController(taskRepo, log),
	}, nil
}

// SetupRoutes registers the API surface under basePath
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := api.Group("")
	protected.Use(a.guard.Middleware())

	route.RegisterClientRoutes(protected, a.clientController)
	route.RegisterInstrumentRoutes(protected, a.instrumentController)
	route.RegisterSaleRoutes(protected, a.saleController)
	route.RegisterConnectionRoutes(protected, a.connectionController)
	route.RegisterInvoiceRoutes(protected, a.invoiceController)
	route.RegisterTaskRoutes(protected, a.taskController)
}

// Run starts the HTTP server
func (a *App) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	a.logger.Info("starting server", "port", port)
	return a.router.Run(":" + port)
}

// Close releases the application resources
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{"http://localhost:3000"}
}
