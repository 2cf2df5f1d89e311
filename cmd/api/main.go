package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/HavvokLab/contact-sync/bootstrap"
	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/pkg/scheduler"
	"github.com/HavvokLab/contact-sync/server"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.Init("api.log")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.GetConfig()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap")
	}

	e := server.NewHTTPServer(app.UserService, app.ContactService)

	cron := gocron.NewScheduler(time.Local)
	if err := scheduler.AddCronJob(cron, cfg.Crontab.SyncTime, "contact_sync", logger.New("sync_job.log"), func() error {
		_, err := app.Collector.Execute(ctx)
		return err
	}); err != nil {
		log.Fatal().Err(err).Str("crontab", cfg.Crontab.SyncTime).Msg("failed to schedule synchronization")
	}

	wg := conc.NewWaitGroup()
	wg.Go(func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info().Str("addr", addr).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	})
	wg.Go(func() {
		cron.StartAsync()
		<-ctx.Done()
		cron.Stop()
	})

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}

	wg.Wait()
	log.Info().Msg("stopped")
}
