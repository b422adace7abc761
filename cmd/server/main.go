package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"keycrypt-backend/internal/api"
	"keycrypt-backend/internal/config"
	"keycrypt-backend/internal/core"
	"keycrypt-backend/internal/crypto"
	"keycrypt-backend/internal/db"
	"keycrypt-backend/internal/mailer"
	"keycrypt-backend/internal/middleware"
	"keycrypt-backend/internal/models"
	"keycrypt-backend/internal/strength"
)

func main() {
	// .env is a development convenience; in production the environment is set
	// directly.
	if os.Getenv("GIN_MODE") != "release" {
		_ = godotenv.Load()
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := db.NewClients(initCtx, cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize Firebase clients", zap.Error(err))
	}
	defer clients.Close()

	key, err := encryptionKey(cfg)
	if err != nil {
		zapLogger.Fatal("failed to load encryption key", zap.Error(err))
	}
	cipher, err := crypto.NewCipher(key)
	if err != nil {
		zapLogger.Fatal("failed to initialize cipher", zap.Error(err))
	}
	codec := crypto.NewCodec(cipher, "keywords")

	credentialRepo := db.NewFirestoreCredentialRepository(clients.Firestore)
	activityRepo := db.NewFirestoreActivityRepository(clients.Firestore)
	compromisedRepo := db.NewFirestoreCompromisedRepository(clients.Firestore)
	featureRepo := db.NewFirestoreFeatureRepository(clients.Firestore)
	auditRepo := db.NewFirestoreAuditRepository(clients.Firestore)

	validate := models.NewValidator()
	auditService := core.NewAuditService(auditRepo, zapLogger)

	var alerter core.Alerter
	if m := mailer.NewMailer(cfg); m != nil {
		alerter = m
		zapLogger.Info("suspicious-activity mail alerts enabled")
	} else {
		zapLogger.Info("suspicious-activity mail alerts disabled: SMTP is not configured")
	}

	services := api.Services{
		Credentials: core.NewCredentialService(credentialRepo, codec, validate, auditService),
		Activities:  core.NewActivityService(activityRepo, validate, auditService, alerter, zapLogger),
		Compromised: core.NewCompromisedService(compromisedRepo, validate, auditService),
		Features:    core.NewFeatureService(featureRepo, validate),
	}

	if cfg.StrengthEngineURL != "" {
		var cache *redis.Client
		if cfg.RedisAddress != "" {
			cache = redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddress,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			defer cache.Close()
		}
		services.Strength = strength.NewClient(cfg.StrengthEngineURL, cache, zapLogger)
		zapLogger.Info("strength engine proxy enabled",
			zap.String("engine_url", cfg.StrengthEngineURL),
			zap.Bool("cache", cache != nil),
		)
	}

	if strings.ToLower(cfg.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ClientIP())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if cfg.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(cfg))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured")
	}

	authMW := middleware.NewAuthMiddleware(clients.Auth, zapLogger)
	api.SetupRoutes(router, authMW, services, zapLogger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("address", httpServer.Addr), zap.String("gin_mode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server forced to shut down", zap.Error(err))
	}
	zapLogger.Info("server exiting gracefully")
}

// encryptionKey resolves the configured key material: a base64 key verbatim,
// or an argon2id derivation from the passphrase and salt.
func encryptionKey(cfg *config.Config) ([]byte, error) {
	if cfg.EncryptionKey != "" {
		return crypto.KeyFromBase64(cfg.EncryptionKey)
	}
	return crypto.DeriveKey(cfg.EncryptionPassphrase, cfg.EncryptionSalt)
}
