package main // Entry point package

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/roomescape-reservation/internal/config"
	"github.com/iliyamo/roomescape-reservation/internal/database"
	"github.com/iliyamo/roomescape-reservation/internal/handler"
	"github.com/iliyamo/roomescape-reservation/internal/lib/logger/sl"
	"github.com/iliyamo/roomescape-reservation/internal/metrics"
	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/queue"
	"github.com/iliyamo/roomescape-reservation/internal/repository"
	"github.com/iliyamo/roomescape-reservation/internal/router"
	"github.com/iliyamo/roomescape-reservation/internal/service"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load() // a missing .env is fine; the environment wins

	cfg := config.Load()
	log := setupLogger(cfg.Env)
	log.Info("starting application", slog.String("env", cfg.Env), slog.String("tz", cfg.Location.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	reservations := repository.NewReservationRepo(db)
	times := repository.NewReservationTimeRepo(db)
	themes := repository.NewThemeRepo(db)
	members := repository.NewMemberRepo(db)

	m := metrics.New()

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		p := queue.NewPublisher(cfg.AMQPURL, log)
		defer p.Close()
		publisher = p

		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.ReservationLogDir, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("reservation consumer stopped", sl.Err(err))
			}
		}()
	} else {
		log.Warn("AMQP url not set, reservation events disabled")
	}

	reservationSvc := service.NewReservationService(log, reservations, times, themes, publisher, m, cfg.Location)
	timeSvc := service.NewReservationTimeService(log, times, reservations)
	themeSvc := service.NewThemeService(log, themes, reservations, service.PopularityWindow{
		Days:  cfg.PopularThemeDays,
		Limit: cfg.PopularThemeLimit,
	}, cfg.Location)
	memberSvc := service.NewMemberService(log, members, cfg.JWTSecret, cfg.AccessTTL(), cfg.BcryptCost)

	e := newServer(log, cfg.JWTSecret, cfg.Env == envProd, db, m, rateLimiter(ctx, log, m), services{
		Reservations: reservationSvc,
		Times:        timeSvc,
		Themes:       themeSvc,
		Members:      memberSvc,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("stopping application")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", sl.Err(err))
		return
	}
	log.Info("application stopped")
}

type services struct {
	Reservations handler.ReservationService
	Times        handler.TimeService
	Themes       handler.ThemeService
	Members      handler.MemberService
}

// newServer builds the echo instance with the global middleware chain and
// every route group.  limiter may be nil.
func newServer(
	log *slog.Logger,
	jwtSecret string,
	secureCookie bool,
	db handler.Pinger,
	m *metrics.Metrics,
	limiter echo.MiddlewareFunc,
	svc services,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Use(middleware.AssignRequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())

	reservationH := handler.NewReservationHandler(svc.Reservations)
	timeH := handler.NewTimeHandler(svc.Times)
	themeH := handler.NewThemeHandler(svc.Themes)
	authH := handler.NewAuthHandler(svc.Members, secureCookie)

	router.RegisterRoutes(e, db, log, m.Handler())
	router.RegisterAuth(e, authH, jwtSecret)
	router.RegisterPublic(e, themeH, timeH)
	router.RegisterMember(e, reservationH, jwtSecret, limiter)
	router.RegisterAdmin(e, router.AdminHandlers{
		Reservations: reservationH,
		Times:        timeH,
		Themes:       themeH,
		Auth:         authH,
	}, jwtSecret)
	return e
}

// rateLimiter returns the booking limiter, or nil when rate limiting is
// disabled or Redis is unreachable.
func rateLimiter(ctx context.Context, log *slog.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	cfg := config.LoadRateLimitConfig()
	if !cfg.Enabled {
		return nil
	}
	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting disabled")
		return nil
	}
	return middleware.NewTokenBucket(cfg, rdb, log, m)
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return logger
}
