package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"fittrack/internal/controllers"
	"fittrack/internal/persistence/interfaces"
	"fittrack/internal/providers"
	"fittrack/internal/structures"
)

type App struct {
	WebServer *http.Server
	scheduler interfaces.SchedulerInterface
	conf      *structures.Config
	logger    providers.Logger
}

func NewApp(apiController *controllers.ApiController, healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// API routes are instrumented, infrastructure endpoints are not
	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, providers.MetricsMiddleware(metrics, route.Url, route.Handler))
	}
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		conf:      conf,
		logger:    logger,
	}
}

// Run restores stored progress, serves until SIGINT/SIGTERM and then persists
// a final snapshot.
func (a *App) Run() (err error) {
	defer a.logger.Close()

	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if rerr := a.scheduler.Restore(); rerr != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", rerr)
	}

	if err = a.scheduler.Init(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case serr := <-serverErr:
		err = fmt.Errorf("server error: %w", serr)
	}

	return multierr.Append(err, a.shutdown())
}

func (a *App) shutdown() error {
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.WebServer.Shutdown(ctx)
	err = multierr.Append(err, a.scheduler.Persist())
	err = multierr.Append(err, a.scheduler.Close())
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Shutdown finished with errors: %s", err)
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
