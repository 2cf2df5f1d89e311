package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/query"
	"github.com/HavvokLab/contact-sync/setting"
	"github.com/olivere/elastic/v7"
	"go.openly.dev/pointy"
)

// AgeSearcher finds users whose age, derived from dateOfBirth at query time,
// equals the requested value.
type AgeSearcher interface {
	SearchByExactAge(ctx context.Context, age int) ([]model.UserWithAge, error)
}

func NewAgeSearcher(strategy string, client *elastic.Client, index string) (AgeSearcher, error) {
	switch strategy {
	case "", setting.AgeStrategyRuntime:
		return NewRuntimeAgeSearcher(client, index), nil
	case setting.AgeStrategyLocal:
		return NewLocalAgeSearcher(client, index), nil
	default:
		return nil, fmt.Errorf("unknown age strategy %q", strategy)
	}
}

// runtimeAgeSearcher pushes the age computation into Elasticsearch as a
// runtime field and filters there.
type runtimeAgeSearcher struct {
	elastic *elastic.Client
	index   string
	now     func() time.Time
}

func NewRuntimeAgeSearcher(client *elastic.Client, index string) *runtimeAgeSearcher {
	return &runtimeAgeSearcher{elastic: client, index: index, now: time.Now}
}

func (s *runtimeAgeSearcher) SearchByExactAge(ctx context.Context, age int) ([]model.UserWithAge, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultESTimeout)
	defer cancel()

	q, err := query.ExactAge(age).Source()
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"runtime_mappings": query.AgeRuntimeMappings(s.now()),
		"query":            q,
		"fields":           []string{model.FieldAge},
		"size":             SearchSize,
	}

	result, err := s.elastic.Search(s.index).Source(body).Do(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]model.UserWithAge, 0)
	if result.Hits == nil {
		return users, nil
	}

	for _, hit := range result.Hits.Hits {
		var user model.User
		if err := json.Unmarshal(hit.Source, &user); err != nil {
			return nil, err
		}
		users = append(users, model.NewUserWithAge(user, hitAge(hit.Fields)))
	}

	return users, nil
}

// hitAge reads the first value of the age runtime field.
func hitAge(fields map[string]interface{}) *int {
	values, ok := fields[model.FieldAge].([]interface{})
	if !ok || len(values) == 0 {
		return nil
	}

	switch v := values[0].(type) {
	case float64:
		return pointy.Int(int(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil
		}
		return pointy.Int(int(n))
	default:
		return nil
	}
}

// localAgeSearcher scrolls through every document and derives the age in
// process, for clusters without runtime field support.
type localAgeSearcher struct {
	elastic   *elastic.Client
	index     string
	batchSize int
	now       func() time.Time
}

func NewLocalAgeSearcher(client *elastic.Client, index string) *localAgeSearcher {
	return &localAgeSearcher{
		elastic:   client,
		index:     index,
		batchSize: setting.LocalAgeScrollSize,
		now:       time.Now,
	}
}

func (s *localAgeSearcher) SearchByExactAge(ctx context.Context, age int) ([]model.UserWithAge, error) {
	ctx, cancel := context.WithTimeout(ctx, ScrollESTimeout)
	defer cancel()

	scroll := s.elastic.Scroll(s.index).
		Query(elastic.NewMatchAllQuery()).
		Size(s.batchSize).
		Scroll(ScrollKeepAlive)
	var scrollID string

	defer func() {
		if scrollID != "" {
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cleanupCancel()
			_, _ = s.elastic.ClearScroll(scrollID).Do(cleanupCtx)
		}
	}()

	now := s.now()
	users := make([]model.UserWithAge, 0)
	for {
		result, err := scroll.Do(ctx)
		if errors.Is(err, io.EOF) {
			return users, nil
		}
		if err != nil {
			return nil, err
		}

		if result.ScrollId != "" {
			scrollID = result.ScrollId
		}

		batch, err := decodeUsers(result)
		if err != nil {
			return nil, err
		}

		for _, user := range batch {
			userAge := query.UserAge(user, now)
			if userAge != age {
				continue
			}
			users = append(users, model.NewUserWithAge(user, pointy.Int(userAge)))
		}

		if len(batch) < s.batchSize {
			return users, nil
		}
	}
}
