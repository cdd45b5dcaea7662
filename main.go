package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/config"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/controllers"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/logging"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/mail"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/observability"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/otp"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store/mongostore"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logs, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logs.Closer()
	logger := logs.Base

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "")
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer flushSentry()

	ctx := context.Background()

	client, db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongodb", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB))

	dataStore, err := mongostore.New(ctx, db)
	if err != nil {
		logger.Fatal("store init", zap.Error(err))
	}

	// OTP entries live in Redis when configured, otherwise in-process.
	var otpStore otp.Store
	if cfg.RedisAddr != "" {
		redisStore, err := otp.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer redisStore.Close()
		otpStore = redisStore
		logger.Info("using redis OTP store", zap.String("addr", cfg.RedisAddr))
	} else {
		otpStore = otp.NewMemoryStore()
	}

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = &mail.SMTPMailer{
			Host: cfg.SMTPHost, Port: cfg.SMTPPort,
			User: cfg.SMTPUser, Pass: cfg.SMTPPass, From: cfg.MailFrom,
		}
	} else {
		logger.Warn("SMTP not configured, OTP mails will be logged")
		mailer = &mail.LogMailer{Log: logger}
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := &controllers.API{
		Store:  dataStore,
		OTP:    otpStore,
		Mailer: mailer,
		Log:    logger,
		Secret: cfg.JWTSecret,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongodb disconnect", zap.Error(err))
	}
	logger.Info("server exited")
}
