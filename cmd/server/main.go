// cmd/server/main.go
// This is the entry point for the Fantasy Golf Tour API server.
// In Go, the "main" package and its "main()" function is where the program starts executing.
// The "cmd/server" directory follows a common Go convention: the cmd/ folder holds executable
// binaries, and internal/ holds reusable packages that are not meant to be imported by other projects.
package main

import (
	"log"

	// fiber is a fast HTTP web framework inspired by Express.js
	"github.com/gofiber/fiber/v2"
	// cors handles Cross-Origin Resource Sharing — allows the web app to talk to
	// the API even though they're running on different origins (hosts/ports)
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	// recover turns a panicking handler into a 500 response instead of a crashed process
	"github.com/gofiber/fiber/v2/middleware/recover"
	// logrus is the structured application logger, injected into the feed client
	// and the scoring handlers (request logs stay with fiber's logger middleware)
	"github.com/sirupsen/logrus"

	// Internal packages — our own code, imported by module path
	"github.com/opentour/fantasy-golf/internal/config"
	"github.com/opentour/fantasy-golf/internal/database"
	"github.com/opentour/fantasy-golf/internal/datagolf"
	"github.com/opentour/fantasy-golf/internal/handlers"
	"github.com/opentour/fantasy-golf/internal/middleware"
	"github.com/opentour/fantasy-golf/internal/websocket"
)

func main() {
	// Load configuration from environment variables (and optionally a .env file).
	// cfg is a pointer (*Config) containing all runtime settings like port, database URL, etc.
	cfg := config.Load()

	// The application logger. JSON output so log aggregators can index the fields.
	appLog := logrus.New()
	appLog.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "development" {
		appLog.SetLevel(logrus.DebugLevel)
	}

	// Connect to the PostgreSQL database.
	// We store the returned *gorm.DB — it's used by middleware and handlers to run queries.
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run any pending SQL migration files (in the migrations/ directory).
	// Migrations are SQL scripts that create or alter tables. Running them on startup
	// ensures the database schema is always in sync when the server starts.
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// The golf-stats feed client — live golfer scores come from here.
	feed := datagolf.NewHTTPClient(cfg.DataGolfURL, cfg.DataGolfKey, appLog)

	// Create a new WebSocket Hub and start it in a goroutine.
	// The Hub manages all live WebSocket connections — members watching live leaderboards.
	// "go hub.Run()" starts Run() as a goroutine: a lightweight concurrent function
	// that runs in the background without blocking the rest of startup.
	hub := websocket.NewHub()
	go hub.Run()

	// Create a new Fiber app (our HTTP server).
	app := fiber.New(fiber.Config{
		AppName: "Fantasy Golf Tour API",
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	// recover.New() catches panics so one bad request can't take the server down.
	app.Use(recover.New())
	// logger.New() logs each HTTP request: method, path, status code, and duration.
	app.Use(logger.New())
	// cors.New() allows requests from any origin (needed for the web app in development).
	// In production, lock this down to your specific domain.
	app.Use(cors.New())

	// --- Public routes (no auth required) ---
	// GET /health is a liveness check used by load balancers to verify the server is running.
	app.Get("/health", handlers.HealthCheck)

	// GET /ws/tournaments/:id upgrades to a WebSocket and streams leaderboard
	// broadcasts for one tournament. UpgradeRequired rejects plain HTTP requests
	// before the upgrade handler sees them.
	app.Get("/ws/tournaments/:id", websocket.UpgradeRequired, websocket.Serve(hub))

	// --- Cron routes (shared-secret auth, hit by the scheduler) ---
	// GET /api/v1/cron/sync-field seeds the upcoming tournament's golfer rows
	// and pick groups from the feed while the submission window is open.
	// GET /api/v1/cron/update-teams runs one live-scoring pass: feed fetch,
	// golfer upsert, team rescore, standings, broadcast.
	cron := app.Group("/api/v1/cron", middleware.RequireCronSecret(cfg))
	cron.Get("/sync-field", handlers.SyncField(db, feed, appLog))
	cron.Get("/update-teams", handlers.UpdateTeams(db, feed, hub, appLog))

	// --- Authenticated API routes ---
	// All routes under /api/v1 require a valid Clerk JWT.
	// middleware.Auth(cfg, db) validates the token AND syncs the member to our database.
	//
	// Route group pattern: app.Group(prefix, middlewares...) applies the middleware
	// to every route registered on the returned group — we don't have to repeat it per route.
	api := app.Group("/api/v1", middleware.Auth(cfg, db))

	// Schedule and leaderboards
	api.Get("/tournaments", handlers.GetTournaments(db))
	api.Get("/tournaments/:id/leaderboard", handlers.GetLeaderboard(db))

	// Season standings per tour
	api.Get("/tours/:id/standings", handlers.GetTourStandings(db))

	// Roster submission (locked once play starts) and retrieval
	api.Post("/tournaments/:id/teams", handlers.SubmitTeam(db))
	api.Get("/tournaments/:id/teams/me", handlers.GetMyTeam(db))

	// Admin-only historical rebuild of one tournament's results
	api.Post("/tournaments/:id/recalculate",
		middleware.RequireRole("admin"), handlers.RecalculateTournament(db, appLog))

	// Start listening for HTTP connections on the configured port.
	// ":" + cfg.Port produces a string like ":8080" — listen on all network interfaces.
	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
