package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "github.com/redmonkez12/carbon-tracker/docs" // Swagger docs (generated)
	"github.com/redmonkez12/carbon-tracker/internal/activity"
	"github.com/redmonkez12/carbon-tracker/internal/advice"
	"github.com/redmonkez12/carbon-tracker/internal/auth"
	"github.com/redmonkez12/carbon-tracker/internal/config"
	"github.com/redmonkez12/carbon-tracker/internal/database"
	"github.com/redmonkez12/carbon-tracker/internal/email"
	"github.com/redmonkez12/carbon-tracker/internal/emission"
	httpServer "github.com/redmonkez12/carbon-tracker/internal/http"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
	"github.com/redmonkez12/carbon-tracker/internal/user"
)

// @title           Carbon Tracker API
// @version         1.0
// @description     Passwordless login plus personal carbon footprint logging, tips and a chatbot.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"token_strategy", cfg.Auth.TokenStrategy,
	)

	stores, err := initStores(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}
	defer stores.close()

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	emailService := email.NewService(initSender(cfg, logger))

	authService := auth.NewService(
		stores.users,
		tokenService,
		emailService,
		logger,
		cfg.Auth.LoginCodeTTL,
		cfg.Auth.SessionTokenDuration,
	)
	activityService := activity.NewService(stores.activities, logger)
	adviceService := advice.NewService(activityService)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:        auth.NewHandler(authService),
		Activity:    activity.NewHandler(activityService),
		Emission:    emission.NewHandler(),
		Advice:      advice.NewHandler(adviceService),
		RequireAuth: auth.NewMiddleware(authService).RequireAuth,
	}, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

type stores struct {
	users      user.Store
	activities activity.Store
	closers    []func() error
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// initStores connects the backend selected by STORE_DRIVER
func initStores(cfg *config.Config, logger *logging.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.CreateSchema(context.Background(), db); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			users:      user.NewRepository(db),
			activities: activity.NewRepository(db),
			closers:    []func() error{db.Close},
		}, nil

	case config.StoreDriverMongo:
		client, db, err := initMongo(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		userStore := user.NewMongoStore(db)
		activityStore := activity.NewMongoStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := userStore.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		if err := activityStore.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			users:      userStore,
			activities: activityStore,
			closers:    []func() error{func() error { return client.Disconnect(context.Background()) }},
		}, nil

	case config.StoreDriverRedis:
		client, err := initRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:      user.NewRedisStore(client),
			activities: activity.NewRedisStore(client),
			closers:    []func() error{client.Close},
		}, nil

	default:
		logger.Warn("using in-memory stores; data is lost on restart")
		return &stores{
			users:      user.NewMemoryStore(),
			activities: activity.NewMemoryStore(),
		}, nil
	}
}

// initSender uses SMTP when configured. Development without SMTP logs the message instead;
// config.Validate rejects that setup in any other environment.
func initSender(cfg *config.Config, logger *logging.Logger) email.Sender {
	if !cfg.Email.SMTPEnabled() && cfg.Server.IsDevelopment() {
		logger.Warn("SMTP_HOST not set; login codes will be written to the log")
		return email.LogSender{}
	}
	e := cfg.Email
	return email.NewSMTPSender(e.SMTPHost, e.SMTPPort, e.SMTPUser, e.SMTPPassword, e.From)
}

func initMongo(cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
