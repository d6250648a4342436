package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lcftrans/core/config"
	"lcftrans/core/database"
	"lcftrans/core/loader"
	"lcftrans/core/logger"
	"lcftrans/core/middleware/auth"
	"lcftrans/core/middleware/rayid"
	"lcftrans/feature/memory"
	"lcftrans/feature/status"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the translation progress dashboard",
	Long: `Starts an HTTP server that reports translation progress, serves unit
listings and searches terms across the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// The memory feature only loads when the database is reachable.
		var memorySvc *memory.Service
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			memorySvc = memory.NewService(conn, logg)
			if err := memorySvc.Migrate(); err != nil {
				logg.Warn("Memory table migration failed", zap.Error(err))
				memorySvc = nil
			} else {
				logg.Info("Connected to translation memory database")
			}
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(status.NewFeature(cfg.Project.Output, cfg.Server.CacheTTL(), logg))
		mgr.Register(memory.NewFeature(memorySvc))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			// Attach logger to locals? or just log request here?
			// Let's log the incoming request
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		// We protect everything for now as requested ("protect every request")
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("directory", cfg.Project.Output),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
