package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/lynx-sales/internal/config"
	"github.com/fsdevblog/lynx-sales/internal/lock"
	"github.com/fsdevblog/lynx-sales/internal/repository/pgrepo"
	"github.com/fsdevblog/lynx-sales/internal/service"
	"github.com/fsdevblog/lynx-sales/internal/session"
	"github.com/fsdevblog/lynx-sales/internal/transport/api"
	"github.com/fsdevblog/lynx-sales/internal/transport/authgate"
	"github.com/fsdevblog/lynx-sales/internal/transport/authgate/client"
	"github.com/fsdevblog/lynx-sales/pkg/uow"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork := uow.NewUnitOfWork(conn)
	if regErr := pgrepo.Register(unitOfWork); regErr != nil {
		return fmt.Errorf("app run: %s", regErr.Error())
	}

	locker, closeLocker := a.initLocker()
	defer closeLocker()

	services, sErr := service.Factory(unitOfWork, locker, a.Logger)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	authClient := client.New(a.Config.AuthURL, a.Config.AuthAPIKey)
	defer func() {
		if err := authClient.Close(); err != nil {
			a.Logger.WithError(err).Warn("closing auth client")
		}
	}()

	registry := session.NewRegistry(
		a.Config.SessionRegistrySize,
		a.Config.SessionRegistryTTL,
		authgate.Factory(authClient),
		a.Logger,
	).SetConfigure(func(g *session.Guard) {
		g.SetCacheTTL(a.Config.SessionCacheTTL)
	})
	resolver := session.NewResolver(registry, session.GracePolicy{Window: a.Config.SessionGrace})

	router, routerErr := api.New(api.RouterArgs{
		Logger:          a.Logger,
		SaleService:     services.SaleService,
		PaymentService:  services.PaymentService,
		TeamService:     services.TeamService,
		SessionResolver: resolver,
		JWTSecretKey:    []byte(a.Config.AuthJWTSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	g, gCtx := errgroup.WithContext(notifyCtx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

// initLocker подключает redis для блокировок продаж. Без REDIS_ADDRESS блокировки не нужны:
// в одном процессе правки одной продажи и так упорядочены блокировкой строки в транзакции.
func (a *App) initLocker() (service.Locker, func()) {
	if a.Config.RedisAddress == "" {
		a.Logger.Info("REDIS_ADDRESS is not set, sale locks are process local")
		return lock.NopLocker{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddress,
		Password: a.Config.RedisPassword,
	})
	return lock.NewRedisLocker(rdb), func() {
		if err := rdb.Close(); err != nil {
			a.Logger.WithError(err).Warn("closing redis client")
		}
	}
}
