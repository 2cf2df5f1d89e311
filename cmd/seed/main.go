package main

import (
	"context"
	"flag"
	"os"

	"github.com/HavvokLab/contact-sync/config"
	"github.com/HavvokLab/contact-sync/infra"
	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/HavvokLab/contact-sync/repo"
	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultFileName = "users.csv"
	batchSize       = 500
)

func main() {
	filename := flag.String("f", DefaultFileName, "csv file to load")
	flag.Parse()

	logger.Init("seed.log")
	ctx := context.Background()
	cfg := config.GetConfig()

	file, err := os.Open(*filename)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open file")
	}
	defer file.Close()

	var rows []model.SeedUser
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.Fatal().Err(err).Str("file", *filename).Msg("failed to decode file")
	}

	client, err := infra.NewElasticClient(cfg.Elastic)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create elasticsearch client")
	}
	if err := infra.EnsureUsersIndex(ctx, client, cfg.Elastic.Index); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure index")
	}

	users := Validate(rows)
	userRepo := repo.NewUserRepo(client, cfg.Elastic.Index)
	for start := 0; start < len(users); start += batchSize {
		end := min(start+batchSize, len(users))
		if err := userRepo.BulkUpsert(ctx, users[start:end]); err != nil {
			log.Fatal().Err(err).Int("from", start).Int("to", end).Msg("failed to load users")
		}
	}

	log.Info().Int("rows", len(rows)).Int("loaded", len(users)).Msg("seed finished")
}

// Validate keeps the rows that pass validation, logging the others.
func Validate(rows []model.SeedUser) []model.IdentifiedUser {
	vld := validator.New()
	users := make([]model.IdentifiedUser, 0, len(rows))
	for _, row := range rows {
		if err := vld.Struct(row); err != nil {
			log.Warn().Err(err).Any("row", row).Msg("invalid row")
			continue
		}

		user, err := row.ToIdentifiedUser()
		if err != nil {
			log.Warn().Err(err).Any("row", row).Msg("invalid row")
			continue
		}

		users = append(users, user)
	}

	return users
}
