// Package bootstrap wires configuration into the repositories, collector
// and services shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/HavvokLab/contact-sync/api/hubspot"
	"github.com/HavvokLab/contact-sync/collector"
	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/infra"
	"github.com/HavvokLab/contact-sync/repo"
	"github.com/HavvokLab/contact-sync/service"
	"github.com/olivere/elastic/v7"
	"github.com/rs/zerolog/log"
)

type App struct {
	Config         config.Config
	Elastic        *elastic.Client
	UserRepo       repo.UserRepo
	SyncRunRepo    repo.SyncRunRepo
	Collector      *collector.ContactCollector
	UserService    *service.UserService
	ContactService *service.ContactService
}

// New connects to Elasticsearch, makes sure the users index exists and
// builds every component on top of it. The sync run ledger and the SNMP
// notifier are optional: failing to set them up is logged, not fatal.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	client, err := infra.NewElasticClient(cfg.Elastic)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	if err := infra.WaitForElastic(ctx, client, cfg.Elastic.Host); err != nil {
		return nil, err
	}

	if err := infra.EnsureUsersIndex(ctx, client, cfg.Elastic.Index); err != nil {
		return nil, fmt.Errorf("failed to ensure index %s: %w", cfg.Elastic.Index, err)
	}

	ageSearcher, err := repo.NewAgeSearcher(cfg.Elastic.AgeStrategy, client, cfg.Elastic.Index)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Elastic:  client,
		UserRepo: repo.NewUserRepo(client, cfg.Elastic.Index),
	}

	var opts []collector.Option
	if db, err := infra.NewGormDB(cfg.Database.Path); err != nil {
		log.Warn().Err(err).Str("path", cfg.Database.Path).Msg("sync run ledger disabled")
	} else {
		app.SyncRunRepo = repo.NewSyncRunRepo(db)
		opts = append(opts, collector.WithSyncRunRepo(app.SyncRunRepo))
	}

	if len(cfg.SnmpList) > 0 {
		notifier, err := infra.NewSnmpOrchestrator(infra.TrapTypeSyncFailure, cfg.SnmpList)
		if err != nil {
			log.Warn().Err(err).Msg("sync failure traps disabled")
		} else {
			opts = append(opts, collector.WithNotifier(notifier))
		}
	}

	app.Collector = collector.NewContactCollector(hubspot.NewHubspotClient(cfg.Hubspot), app.UserRepo, opts...)
	app.UserService = service.NewUserService(app.UserRepo, ageSearcher)
	app.ContactService = service.NewContactService(app.Collector, app.SyncRunRepo)
	return app, nil
}
