package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/finance-planner/backend/internal/config"
	"example.com/finance-planner/backend/internal/handlers"
	"example.com/finance-planner/backend/internal/notifications"
	"example.com/finance-planner/backend/internal/store"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, recordStore *store.Store, hub *notifications.Hub) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	profileHandler := handlers.NewProfileHandler(recordStore)
	itemHandler := handlers.NewItemHandler(recordStore)
	goalHandler := handlers.NewGoalHandler(recordStore, cfg.Planner.HorizonMonths)
	netWorthHandler := handlers.NewNetWorthHandler(recordStore)
	statsHandler := handlers.NewStatsHandler(recordStore, cfg.Planner.WithdrawalRate)
	onboardingHandler := handlers.NewOnboardingHandler(recordStore)
	metaHandler := handlers.NewMetaHandler(cfg.Planner)
	exportHandler := handlers.NewExportHandler(recordStore)
	eventsHandler := handlers.NewEventsHandler(hub)

	registerRoutes(
		e,
		profileHandler,
		itemHandler,
		goalHandler,
		netWorthHandler,
		statsHandler,
		onboardingHandler,
		metaHandler,
		exportHandler,
		eventsHandler,
		apiRateLimiter(cfg.API),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func apiRateLimiter(cfg config.APIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	limiterStore := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(limiterStore)
}
