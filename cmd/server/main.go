package main

import (
	"context"   // Shutdown and Redis ping contexts
	"errors"    // http.ErrServerClosed check
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"fastpay/internal/api"          // HTTP handlers and router
	"fastpay/internal/config"       // Configuration
	"fastpay/internal/db"           // Store
	"fastpay/internal/events"       // Event publisher interface
	"fastpay/internal/events/kafka" // Kafka publisher
	"fastpay/internal/service"      // Business logic
	"fastpay/internal/utils"        // Tokens and cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	store := db.NewStore(gdb)
	if cfg.DBDriver == config.DriverSQLite {
		// Local runs without a separate migrate step
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("failed to migrate sqlite store: %v", err)
		}
	}

	// Setup Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err() // Test Redis connection
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, caching disabled")
	}

	// Transfer events, optional
	var publisher events.Publisher = events.Nop{}
	var kafkaPublisher *kafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = kafkaPublisher
		logrus.WithFields(logrus.Fields{
			"brokers": cfg.KafkaBrokers,
			"topic":   cfg.KafkaTopic,
		}).Info("Publishing transfer events")
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	cache := utils.NewCache(redisClient, cfg.CacheTTL)
	logger := logrus.StandardLogger()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Accounts:    service.NewAccountService(store.Accounts, tokens, logger),
		Transfers:   service.NewTransferService(store.Accounts, store.Ledger, store, cache, publisher, logger),
		Tokens:      tokens,
		Cache:       cache,
		Store:       store,
		CORSOrigins: cfg.CORSOrigins,
		Log:         logger,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("HTTP shutdown: %v", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logrus.Errorf("closing Kafka writer: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logrus.Errorf("closing Redis: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		logrus.Errorf("closing DB: %v", err)
	}
}

// setupLogger applies the formatter and level for the environment
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
