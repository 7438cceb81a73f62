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

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yukikurage/planner-api/internal/config"
	"github.com/yukikurage/planner-api/internal/constants"
	"github.com/yukikurage/planner-api/internal/database"
	"github.com/yukikurage/planner-api/internal/handlers"
	"github.com/yukikurage/planner-api/internal/logging"
	"github.com/yukikurage/planner-api/internal/metrics"
	"github.com/yukikurage/planner-api/internal/realtime"
	"github.com/yukikurage/planner-api/internal/scheduler"
	"github.com/yukikurage/planner-api/internal/utils"
)

const (
	shutdownTimeout    = 10 * time.Second
	reminderRunTimeout = 5 * time.Minute
)

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *configFile, true)
			if err != nil {
				return err
			}
			defer a.close()

			return serve(ctx, a)
		},
	}
}

func newMigrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *configFile, false)
			if err != nil {
				return err
			}
			defer a.close()

			return database.Migrate(a.db, a.log)
		},
	}
}

func newRemindCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Create today's task reminders once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *configFile, true)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), reminderRunTimeout)
			defer cancel()

			n, err := a.reminders.Run(ctx)
			if err != nil {
				return fmt.Errorf("failed to create reminders: %w", err)
			}
			a.log.WithField("count", n).Info("Task reminders created")
			return nil
		},
	}
}

func serve(ctx context.Context, a *app) error {
	gin.SetMode(a.cfg.GinMode)

	if err := database.Migrate(a.db, a.log); err != nil {
		return err
	}
	if err := utils.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	store, err := newSessionStore(a.cfg)
	if err != nil {
		return err
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(a.log), a.metrics.Middleware())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/health", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), sqlDB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Planner API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	metrics.RegisterGauge(a.registry, "planner_realtime_clients", "Connected websocket clients", func() float64 {
		return float64(a.hub.ClientCount())
	})
	rt := realtime.NewHandler(a.hub, a.cfg.BaseURL, a.log)
	handlers.RegisterRoutes(r.Group("/api"), a.services, a.metrics, rt)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.hub.Run(gctx)
		return nil
	})

	if a.bridge != nil {
		g.Go(func() error {
			if err := a.bridge.Run(gctx); err != nil {
				a.log.WithError(err).Warn("Realtime Redis bridge stopped")
			}
			return nil
		})
	}

	if a.cfg.Reminders.Enabled {
		sched := scheduler.New(a.cfg.Location(), reminderRunTimeout, a.log)
		id, err := sched.Add("task_reminders", a.cfg.Reminders.Schedule, a.reminders.Run)
		if err != nil {
			return err
		}
		sched.Start()
		a.log.WithField("next_run", sched.Next(id)).Info("Reminder scheduler started")

		g.Go(func() error {
			<-gctx.Done()
			sched.Stop()
			return nil
		})
	}

	g.Go(func() error {
		a.log.WithField("port", a.cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newSessionStore returns the Redis-backed store, or signed cookies when
// session.store is "cookie".
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.Session.Store {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	default:
		s, err := redisStore.NewStore(
			10,               // Redis pool size
			"tcp",            // network type
			cfg.Redis.Addr(), // Redis address from config
			cfg.Redis.Password,
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		store = s
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
