package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tricky-turns-backend/handlers"
	"tricky-turns-backend/models"
	"tricky-turns-backend/services"
	"tricky-turns-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB — JSON only, no uploads
	})

	// CORS: load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, User-Agent",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.AdminSession{},
		&models.AdminAuditLog{},
		&models.GameMode{},
		&models.LeaderboardScore{},
		&models.ScoreHistory{},
		&models.GameSession{},
		&models.ShopItem{},
		&models.Purchase{},
		&models.Contest{},
		&models.ContestEntry{},
		&models.SupportTicket{},
		&models.PromoCode{},
		&models.FeatureToggle{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	verifier, err := services.NewVerifierFromEnv()
	if err != nil {
		log.Fatal("failed to configure token verifier:", err)
	}

	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db)
	leaderboardService := services.NewLeaderboardService(db)
	sessionService := services.NewSessionService(db)
	shopService := services.NewShopService(db)
	contestService := services.NewContestService(db)
	supportService := services.NewSupportService(db)
	promoService := services.NewPromoService(db)
	adminService := services.NewAdminService(db)
	consoleService := services.NewAdminConsoleService(db, adminService, leaderboardService)

	if err := adminService.Bootstrap(); err != nil {
		log.Fatal("failed to bootstrap admin account:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	purchaseVerifier := workers.NewPurchaseVerifier(db)
	go purchaseVerifier.Run(ctx, 30*time.Second)

	services.StartMaintenanceScheduler(adminService, contestService)

	// Admin routes first: the player surface mounts its auth middleware on
	// "/", which would otherwise swallow /admin requests.
	handlers.SetupAdminRoutes(app, adminService, consoleService)
	handlers.SetupPlayerRoutes(app, verifier, userService, handlers.PlayerServices{
		Catalog:     catalogService,
		Leaderboard: leaderboardService,
		Sessions:    sessionService,
		Shop:        shopService,
		Contests:    contestService,
		Support:     supportService,
		Promo:       promoService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Purchase verification worker running (every 30s)")
	log.Println("✅ Maintenance scheduler running (session purge, contest windows)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
