package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"mwit_alumni_backend/internals/configs"
	database "mwit_alumni_backend/internals/databases"
	statsService "mwit_alumni_backend/internals/features/finance/stats/service"
	contentService "mwit_alumni_backend/internals/features/home/contents/service"
	"mwit_alumni_backend/internals/features/users/auth/scheduler"
	authService "mwit_alumni_backend/internals/features/users/auth/service"
	helperAuth "mwit_alumni_backend/internals/helpers/auth"
	helperEvents "mwit_alumni_backend/internals/helpers/events"
	helperOSS "mwit_alumni_backend/internals/helpers/oss"
	helperTurnstile "mwit_alumni_backend/internals/helpers/turnstile"
	"mwit_alumni_backend/internals/middlewares"
	authMw "mwit_alumni_backend/internals/middlewares/auth"
	routes "mwit_alumni_backend/internals/route"
	"mwit_alumni_backend/internals/seeds"
)

func main() {
	configs.SetupLogger(os.Stderr)
	configs.LoadEnv()

	app := fiber.New(middlewares.AppConfig())
	middlewares.SetupMiddlewares(app)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.RunMigrations {
		if err := database.RunMigrations(database.BuildDSN()); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	database.WarmUpQueries()
	db := database.DB

	if configs.GetEnvBool("RUN_SEEDS", false) {
		if err := seeds.RunAllSeeds(db); err != nil {
			slog.Error("seeding failed", "err", err)
		}
	}

	var publisher helperEvents.Publisher = helperEvents.NoopPublisher{}
	var amqpPub *helperEvents.AMQPPublisher
	if configs.AMQPURL != "" {
		p, err := helperEvents.NewAMQPPublisher(configs.AMQPURL, configs.AMQPExchange)
		if err != nil {
			slog.Warn("AMQP unavailable, domain events disabled", "err", err)
		} else {
			amqpPub = p
			publisher = p
		}
	}

	var uploader helperOSS.Uploader
	ossSvc, err := helperOSS.NewOSSServiceFromEnv(configs.OSSPrefix)
	if err != nil {
		slog.Warn("object storage not configured, uploads disabled", "err", err)
	} else {
		uploader = ossSvc
	}

	content, err := contentService.NewPublicContent(db, configs.ContentCacheTTL)
	if err != nil {
		slog.Error("content cache init failed", "err", err)
		os.Exit(1)
	}

	stats := statsService.NewStatsService()

	// scheduler after the DB is ready
	jobs := cron.New(cron.WithLocation(configs.AppLocation()))
	if err := statsService.RegisterNightlyRecompute(jobs, db, stats, configs.StatsRecomputeCron); err != nil {
		slog.Error("schedule stats recompute", "err", err)
	}
	if err := helperOSS.RegisterTrashReaper(jobs, ossSvc, helperOSS.TrashReaperConfigFromEnv()); err != nil {
		slog.Error("schedule trash reaper", "err", err)
	}
	if err := scheduler.RegisterBlacklistCleanup(jobs, db); err != nil {
		slog.Error("schedule blacklist cleanup", "err", err)
	}
	jobs.Start()

	routes.SetupRoutes(app, db, routes.Deps{
		Guards:    authMw.NewGuards(db, helperAuth.NewDBRoleResolver(db)),
		Stats:     stats,
		Content:   content,
		Uploader:  uploader,
		Publisher: publisher,
		Turnstile: helperTurnstile.NewCloudflareVerifier(configs.TurnstileSecret),
		Identity:  authService.GoogleVerifier{ClientID: configs.GoogleClientID},
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		slog.Info("listening", "port", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-jobs.Stop().Done()
	content.Close()
	if amqpPub != nil {
		_ = amqpPub.Close()
	}
	database.Close()
}
