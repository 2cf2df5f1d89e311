package infra

import (
	"context"
	"errors"
	"time"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/olivere/elastic/v7"
	"github.com/rs/zerolog/log"
)

const pingInterval = time.Second

// UsersIndexBody is the settings and mapping of the users index: names are
// analyzed into 3-5 character n-grams for partial matching.
func UsersIndexBody() map[string]any {
	return map[string]any{
		"settings": map[string]any{
			"max_ngram_diff": 6,
			"analysis": map[string]any{
				"analyzer": map[string]any{
					"ngram_analyzer": map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "name_ngram"},
					},
				},
				"filter": map[string]any{
					"name_ngram": map[string]any{
						"type":     "ngram",
						"min_gram": 3,
						"max_gram": 5,
					},
				},
			},
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				model.FieldFName:            map[string]any{"type": "text", "analyzer": "ngram_analyzer"},
				model.FieldLName:            map[string]any{"type": "text", "analyzer": "ngram_analyzer"},
				model.FieldDateOfBirth:      map[string]any{"type": "date"},
				model.FieldCountOfOwnedCars: map[string]any{"type": "integer"},
			},
		},
	}
}

// WaitForElastic pings url until it answers or ctx is done.
func WaitForElastic(ctx context.Context, client *elastic.Client, url string) error {
	for {
		_, _, err := client.Ping(url).Do(ctx)
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Str("url", url).Msg("elasticsearch is not ready yet")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
}

// EnsureUsersIndex creates the users index when it does not exist yet.
func EnsureUsersIndex(ctx context.Context, client *elastic.Client, index string) error {
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	result, err := client.CreateIndex(index).BodyJson(UsersIndexBody()).Do(ctx)
	if err != nil {
		return err
	}

	if !result.Acknowledged {
		return errors.New("elasticsearch did not acknowledge")
	}

	log.Info().Str("index", index).Msg("index created")
	return nil
}
