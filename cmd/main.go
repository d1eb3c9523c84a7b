package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"social_dashboard/internal/handlers"
	"social_dashboard/internal/logger"
	"social_dashboard/internal/repository"
	"social_dashboard/internal/repository/db"
	"social_dashboard/internal/server"
	"social_dashboard/internal/service"
	"social_dashboard/internal/ws"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	signingKey := viper.GetString("jwt.secret")
	if signingKey == "" {
		log.Fatalw("jwt.secret is not configured; set JWT_SECRET")
	}

	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	uploadsDir := viper.GetString("uploads.dir")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		log.Fatalw("failed to create uploads dir", "dir", uploadsDir, "err", err)
	}

	// wire dependencies
	hub := ws.NewHub(log)
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, hub, signingKey)
	apiHandler := handlers.NewHandler(services, hub, log, uploadsDir,
		viper.GetStringSlice("cors.allowed_origins"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the fanout hub
	go hub.Run(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", "5000")
	viper.SetDefault("db.path", "dashboard.db")
	viper.SetDefault("uploads.dir", "uploads")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	// JWT_SECRET, DB_PATH, CORS_ALLOWED_ORIGINS etc. override the file.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil // env-only deployment
		}
		return err
	}
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "dashboard.db")
		dbPath = "dashboard.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "5000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the hub; connected clients are dropped, events are not replayed
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
