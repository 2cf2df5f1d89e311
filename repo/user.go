package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/olivere/elastic/v7"
	"github.com/rs/zerolog"
)

const (
	// DefaultESTimeout is used for searches, updates and bulk operations.
	DefaultESTimeout = 30 * time.Second
	// SearchSize caps the hits returned by a user search.
	SearchSize = 1000
	// ScrollESTimeout is used for scroll operations that walk the whole index.
	ScrollESTimeout = 5 * time.Minute
	// ScrollKeepAlive is the server-side scroll context keepalive duration.
	ScrollKeepAlive = "2m"
)

var (
	ErrBulkFailed   = errors.New("an error occurred while creating or updating users")
	ErrUpdateFailed = errors.New("an error occurred while updating user")
	ErrUserNotFound = errors.New("user not found")
)

type UserRepo interface {
	BulkUpsert(ctx context.Context, users []model.IdentifiedUser) error
	UpdateField(ctx context.Context, id, field string, value any) error
	Search(ctx context.Context, query elastic.Query) ([]model.User, error)
}

type userRepo struct {
	elastic *elastic.Client
	index   string
	logger  zerolog.Logger
}

func NewUserRepo(client *elastic.Client, index string) UserRepo {
	return &userRepo{
		elastic: client,
		index:   index,
		logger:  logger.New("user_repo.log"),
	}
}

// BulkUpsert sends one update action per user carrying the same fields as
// doc and upsert, so replaying a page converges on the same documents.
func (r *userRepo) BulkUpsert(ctx context.Context, users []model.IdentifiedUser) error {
	if len(users) == 0 {
		return nil
	}

	bulk := r.elastic.Bulk()
	for _, u := range users {
		bulk.Add(elastic.NewBulkUpdateRequest().
			Index(r.index).
			Id(u.ID).
			Doc(u.User).
			Upsert(u.User))
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultESTimeout)
	defer cancel()

	resp, err := bulk.Do(ctx)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(users)).Msg("UserRepo::BulkUpsert() - failed to execute bulk")
		return fmt.Errorf("%w: %w", ErrBulkFailed, err)
	}

	if resp.Errors {
		failed := resp.Failed()
		reason := "unknown"
		if len(failed) > 0 && failed[0].Error != nil {
			reason = failed[0].Error.Reason
		}
		r.logger.Error().
			Int("count", len(users)).
			Int("failed", len(failed)).
			Str("reason", reason).
			Msg("UserRepo::BulkUpsert() - bulk items failed")
		return fmt.Errorf("%w: %d items failed: %s", ErrBulkFailed, len(failed), reason)
	}

	r.logger.Info().Int("count", len(users)).Msg("UserRepo::BulkUpsert() - users created or updated")
	return nil
}

// UpdateField sets a single field on an existing document. Missing
// documents are not created.
func (r *userRepo) UpdateField(ctx context.Context, id, field string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultESTimeout)
	defer cancel()

	_, err := r.elastic.Update().
		Index(r.index).
		Id(id).
		Doc(map[string]any{field: value}).
		Do(ctx)
	if err != nil {
		r.logger.Error().Err(err).Str("id", id).Str("field", field).Msg("UserRepo::UpdateField() - failed to update user")
		if elastic.IsNotFound(err) {
			return fmt.Errorf("%w: %w", ErrUpdateFailed, ErrUserNotFound)
		}
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	return nil
}

func (r *userRepo) Search(ctx context.Context, query elastic.Query) ([]model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultESTimeout)
	defer cancel()

	result, err := r.elastic.Search(r.index).
		Query(query).
		Size(SearchSize).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	return decodeUsers(result)
}

func decodeUsers(result *elastic.SearchResult) ([]model.User, error) {
	users := make([]model.User, 0)
	if result == nil || result.Hits == nil {
		return users, nil
	}

	for _, hit := range result.Hits.Hits {
		var user model.User
		if err := json.Unmarshal(hit.Source, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
