// Command server runs the SkillBridge accounts API.
//
// @title                       SkillBridge API
// @version                     1.0
// @description                 Accounts, sessions and role-based access for the SkillBridge job marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/skillbridge/jobmatch/internal/api"
	"github.com/skillbridge/jobmatch/internal/api/handler"
	"github.com/skillbridge/jobmatch/internal/core/service"
	"github.com/skillbridge/jobmatch/internal/core/validation"
	mongostore "github.com/skillbridge/jobmatch/internal/infrastructure/db/mongo"
	redisstore "github.com/skillbridge/jobmatch/internal/infrastructure/db/redis"
	"github.com/skillbridge/jobmatch/internal/infrastructure/queue"
	"github.com/skillbridge/jobmatch/internal/pkg/config"
	"github.com/skillbridge/jobmatch/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "skillbridge-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "skillbridge-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	dispatcher := queue.NewDispatcher(
		cfg.Auth.NotificationWorkers,
		queue.NewLogNotifier(logger.Component("notifier")),
		logger.Component("dispatcher"),
	)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	authService := service.NewAuthService(
		mongostore.NewUserRepository(db),
		mongostore.NewProfileRepository(db),
		redisstore.NewTokenStore(rdb),
		dispatcher,
		service.AuthConfig{
			JWTSecret:                cfg.JWTSecret,
			TokenTTL:                 cfg.Auth.TokenTTL,
			VerificationTTL:          cfg.Auth.VerificationTTL,
			ResetTTL:                 cfg.Auth.ResetTTL,
			RequireEmailVerification: cfg.Auth.RequireEmailVerification,
			ClientURL:                cfg.Auth.ClientURL,
		},
		logger.Component("auth"),
	)

	var validatorOpts []validation.Option
	if len(cfg.Auth.AcademicDomains) > 0 {
		validatorOpts = append(validatorOpts, validation.WithAcademicDomains(cfg.Auth.AcademicDomains...))
	}

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Verifier:  authService,
		Validator: validation.New(validatorOpts...),
		Health: map[string]handler.Pinger{
			"mongodb": mongostore.Pinger{Client: client},
			"redis":   redisstore.Pinger{Client: rdb},
		},
		Log:          logger.Component("http"),
		AllowOrigins: []string{cfg.Auth.ClientURL},
		RateLimit:    cfg.Auth.RateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
