package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HavvokLab/contact-sync/api/hubspot"
	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/repo"
	"github.com/rs/zerolog"
)

var ErrSync = errors.New("contacts synchronization was finished with error")

type SyncState string

const (
	SyncStateIdle      SyncState = "idle"
	SyncStateRunning   SyncState = "running"
	SyncStateCompleted SyncState = "completed"
	SyncStateFailed    SyncState = "failed"
)

type ContactSource interface {
	ListAllContacts(ctx context.Context, onPage hubspot.PageHandler[hubspot.Contact]) error
}

type Notifier interface {
	NotifySyncFailure(description string)
}

type SyncResult struct {
	State   SyncState `json:"state"`
	Pages   int       `json:"pages"`
	Records int       `json:"records"`
}

type Option func(*ContactCollector)

// WithSyncRunRepo records every run in the sync run ledger.
func WithSyncRunRepo(runRepo repo.SyncRunRepo) Option {
	return func(c *ContactCollector) {
		c.runRepo = runRepo
	}
}

// WithNotifier raises an alarm whenever a run fails.
func WithNotifier(notifier Notifier) Option {
	return func(c *ContactCollector) {
		c.notifier = notifier
	}
}

// ContactCollector copies every contact into the users index, page by page.
// Each Execute call is an independent run starting from the first page;
// pages written before a failure stay written.
type ContactCollector struct {
	source   ContactSource
	userRepo repo.UserRepo
	runRepo  repo.SyncRunRepo
	notifier Notifier
	now      func() time.Time
	logger   zerolog.Logger
}

func NewContactCollector(source ContactSource, userRepo repo.UserRepo, opts ...Option) *ContactCollector {
	c := &ContactCollector{
		source:   source,
		userRepo: userRepo,
		now:      time.Now,
		logger:   logger.New("contact_collector.log"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *ContactCollector) Execute(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{State: SyncStateIdle}
	run := c.startRun()
	result.State = SyncStateRunning

	err := c.source.ListAllContacts(ctx, func(ctx context.Context, contacts []hubspot.Contact) error {
		c.logger.Info().Int("count", len(contacts)).Msg("ContactCollector::Execute() - processing page of contacts")
		if err := c.userRepo.BulkUpsert(ctx, TranslateContacts(contacts)); err != nil {
			return err
		}

		result.Pages++
		result.Records += len(contacts)
		return nil
	})

	if err != nil {
		result.State = SyncStateFailed
		c.logger.Error().
			Err(err).
			Int("pages", result.Pages).
			Int("records", result.Records).
			Msg("ContactCollector::Execute() - synchronization failed")
		c.finishRun(run, result, err)
		if c.notifier != nil {
			c.notifier.NotifySyncFailure(err.Error())
		}
		return result, fmt.Errorf("%w: %w", ErrSync, err)
	}

	result.State = SyncStateCompleted
	c.logger.Info().
		Int("pages", result.Pages).
		Int("records", result.Records).
		Msg("ContactCollector::Execute() - all pages processed successfully")
	c.finishRun(run, result, nil)
	return result, nil
}

// The ledger is best effort; it never changes the outcome of a run.
func (c *ContactCollector) startRun() *model.SyncRun {
	if c.runRepo == nil {
		return nil
	}

	startedAt := c.now()
	run := &model.SyncRun{Status: model.SyncStatusRunning, StartedAt: &startedAt}
	if err := c.runRepo.Create(run); err != nil {
		c.logger.Warn().Err(err).Msg("ContactCollector::startRun() - failed to record sync run")
		return nil
	}

	return run
}

func (c *ContactCollector) finishRun(run *model.SyncRun, result *SyncResult, err error) {
	if run == nil {
		return
	}

	finishedAt := c.now()
	run.FinishedAt = &finishedAt
	run.Pages = result.Pages
	run.Records = result.Records
	run.Status = model.SyncStatusCompleted
	if err != nil {
		run.Status = model.SyncStatusFailed
		run.Error = err.Error()
	}

	if err := c.runRepo.Update(run); err != nil {
		c.logger.Warn().Err(err).Int64("run_id", run.ID).Msg("ContactCollector::finishRun() - failed to record sync run")
	}
}
