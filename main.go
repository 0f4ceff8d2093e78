package main

import (
	"cardagency/config"
	"cardagency/dashboard"
	"cardagency/database"
	applicationRoutes "cardagency/routers/applicationRoutes"
	authRoutes "cardagency/routers/authRoutes"
	dashboardRoutes "cardagency/routers/dashboardRoutes"
	userRoutes "cardagency/routers/userRoutes"
	"cardagency/store"
	"cardagency/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Dashboard state: initial load, then refresh on every change event.
	state := dashboard.NewState(store.New(database.Database.Db), zlog)
	dashboard.Use(state)
	state.Refresh()

	sub, err := dashboard.Subscribe(database.Dsn(), config.AppConfig.ListenChannel, state, zlog)
	if err != nil {
		log.Printf("Warning: change feed unavailable, dashboard refreshes on demand only: %v", err)
	} else {
		defer sub.Close()
	}

	utils.InitializeOrphanSweeper()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	applicationRoutes.SetupApplicationRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)
	userRoutes.SetupUserRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
