package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/HavvokLab/contact-sync/bootstrap"
	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/pkg/scheduler"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

func main() {
	once := flag.Bool("once", false, "run a single synchronization and exit")
	flag.Parse()

	logger.Init("sync.log")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.GetConfig()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap")
	}

	jobLogger := logger.New("sync_job.log")
	if *once {
		if _, err := app.Collector.Execute(ctx); err != nil {
			log.Fatal().Err(err).Msg("synchronization failed")
		}
		return
	}

	cron := gocron.NewScheduler(time.Local)
	if err := scheduler.AddCronJob(cron, cfg.Crontab.SyncTime, "contact_sync", jobLogger, func() error {
		_, err := app.Collector.Execute(ctx)
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register sync job")
	}

	log.Info().Str("crontab", cfg.Crontab.SyncTime).Msg("starting sync scheduler")
	cron.StartAsync()
	<-ctx.Done()
	cron.Stop()
}
