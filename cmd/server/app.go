package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/planner-api/internal/config"
	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/handlers"
	"github.com/yukikurage/planner-api/internal/logging"
	"github.com/yukikurage/planner-api/internal/mailer"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/repository"
	"github.com/yukikurage/planner-api/internal/services"
)

// app holds everything the commands share.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *gorm.DB
	rdb      *redis.Client
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	hub      *realtime.Hub
	bridge   *realtime.RedisBridge

	services  handlers.Services
	reminders *services.ReminderService
}

// bootstrap loads configuration and connects the database. Redis is only
// dialled when withRedis is set and a host is configured.
func bootstrap(ctx context.Context, configFile string, withRedis bool) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(cfg.Log)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, db: db}

	if withRedis && cfg.Redis.Addr() != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable, realtime events stay on this instance")
			_ = a.rdb.Close()
			a.rdb = nil
		}
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	a.hub = realtime.NewHub(log)
	var publisher realtime.Publisher = a.hub
	if a.rdb != nil {
		a.bridge = realtime.NewRedisBridge(a.rdb, cfg.Redis.Channel, a.hub, log)
		publisher = a.bridge
	}

	mail, err := mailer.New(cfg.Email, log)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)
	profiles := services.NewProfileService(repos, publisher, cfg.Location())
	teams := services.NewTeamService(repos, profiles, publisher)

	a.services = handlers.Services{
		Auth:          services.NewAuthService(repos.Users),
		Profiles:      profiles,
		Tasks:         services.NewTaskService(repos, profiles, services.NewAIService(cfg.OpenAIAPIKey, ""), publisher, a.metrics, log),
		Categories:    services.NewCategoryService(repos, profiles, publisher),
		Workspaces:    services.NewWorkspaceService(repos, profiles, publisher, log),
		Teams:         teams,
		Invites:       services.NewInviteService(repos, profiles, mail, cfg.BaseURL, publisher, a.metrics, log),
		Partners:      services.NewPartnerService(repos, publisher),
		Calendar:      services.NewCalendarService(repos, publisher),
		Notifications: services.NewNotificationService(repos, profiles, publisher),
		Exports:       services.NewExportService(repos, profiles),
	}
	a.reminders = services.NewReminderService(repos, profiles, publisher, a.metrics, log)

	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
