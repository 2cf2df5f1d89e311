package scheduler

import (
	"fmt"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// AddCronJob registers fn under cronExpr. Runs never overlap and a panic in
// fn is logged instead of taking the process down.
func AddCronJob(cron *gocron.Scheduler, cronExpr, name string, jobLogger zerolog.Logger, fn func() error) error {
	if _, err := cron.Cron(cronExpr).SingletonMode().Do(func() {
		SafeRun(jobLogger, name, fn)
	}); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	return nil
}

func SafeRun(jobLogger zerolog.Logger, name string, fn func() error) {
	log := jobLogger.With().Str("job", name).Logger()
	log.Info().Msg("job started")
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("recover", r).Msg("job panicked")
		}
	}()

	if err := fn(); err != nil {
		log.Error().Err(err).Msg("job finished with error")
		return
	}

	log.Info().Msg("job finished successfully")
}
