package cmd

import (
	"context"
	"errors"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading-journal/internal/delivery/http"
	"trading-journal/internal/repository"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/middleware"
	"trading-journal/pkg/ratelimit"
	"trading-journal/pkg/utils"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const throttleIdle = 10 * time.Minute

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the trading journal API and snapshot scheduler",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency()
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.db.DB)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	throttleStore := ratelimit.NewLimiterStore(rate.Limit(appDep.cfg.API.CalculateRateLimit), appDep.cfg.API.CalculateRateBurst, throttleIdle)
	middlewares := http.RouteMiddlewares{
		Auth:     middleware.NewAuthMiddleware(middleware.NewTokenVerifier(appDep.cfg.Auth), appDep.log),
		Throttle: middleware.NewUserThrottle(throttleStore),
	}
	httpHandler := http.NewHttpAPIHandler(appDep.echo, appDep.validator, services, appDep.log, middlewares, appDep.db)
	utils.GoSafe(func() { sweepLimiters(ctx, throttleStore) })

	if err := services.SchedulerService.Start(); err != nil {
		appDep.log.Fatal("Failed to start scheduler", logger.ErrorField(err))
	}

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, httpNet.ErrServerClosed) {
			appDep.log.Fatal("Failed to start HTTP server", logger.ErrorField(err))
		}
	}()

	<-ctx.Done()
	appDep.log.Info("Shutting down gracefully...")

	if err := apiServer.Stop(); err != nil {
		appDep.log.Error("Failed to stop HTTP server", logger.ErrorField(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), appDep.cfg.Scheduler.TimeoutDuration+5*time.Second)
	defer cancel()
	if err := services.SchedulerService.Stop(stopCtx); err != nil {
		appDep.log.Warn("Scheduler did not stop in time", logger.ErrorField(err))
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}

func sweepLimiters(ctx context.Context, store *ratelimit.LimiterStore) {
	ticker := time.NewTicker(throttleIdle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep()
		}
	}
}
