package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"agrichain/internal/handler"
	"agrichain/internal/middleware"
	"agrichain/internal/model"
	"agrichain/internal/repository"
	"agrichain/internal/service"
	"agrichain/internal/ws"
	"agrichain/pkg/database"
	"agrichain/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Structured logging
	zlog, err := logger.Init()
	if err != nil {
		log.Fatal("Failed to init logger: ", err)
	}
	defer zlog.Sync()

	// 3. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.Stock{}, &model.Transaction{})
	// At most one active stock row per (user, product)
	if err := db.Exec(repository.ActiveHoldingIndex).Error; err != nil {
		log.Fatal("Failed to create stock index: ", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	ledgerService := service.NewLedgerService(productRepo, stockRepo, txRepo, userRepo, db, wsHub)
	provenanceService := service.NewProvenanceService(productRepo, stockRepo, txRepo)
	authService := service.NewAuthService(userRepo)

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	provenanceHandler := handler.NewProvenanceHandler(provenanceService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "AgriChain Ledger v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Provenance tracking is publicly available by design
	api.Get("/track/:productId", provenanceHandler.Track)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	protected.Get("/me", authHandler.Me)
	protected.Post("/products", ledgerHandler.CreateProduct)
	protected.Post("/transfers", ledgerHandler.TransferProduct)
	protected.Get("/stock", provenanceHandler.GetStock)
	protected.Get("/transactions", provenanceHandler.GetTransactions)
	protected.Get("/summary", provenanceHandler.GetSummary)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	zap.L().Info("server exited")
}
