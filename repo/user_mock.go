package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/olivere/elastic/v7"
)

// userMemory is an in-process UserRepo with the same doc/upsert merge rules
// as the index. Search ignores the query and returns every user ordered by id.
type userMemory struct {
	mu    sync.Mutex
	docs  map[string]map[string]any
	bulks int
}

func NewUserMemoryRepo() *userMemory {
	return &userMemory{docs: make(map[string]map[string]any)}
}

func (r *userMemory) BulkUpsert(ctx context.Context, users []model.IdentifiedUser) error {
	if len(users) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bulks++
	for _, u := range users {
		fields, err := toFields(u.User)
		if err != nil {
			return err
		}

		existing, ok := r.docs[u.ID]
		if !ok {
			r.docs[u.ID] = fields
			continue
		}
		for k, v := range fields {
			existing[k] = v
		}
	}

	return nil
}

func (r *userMemory) UpdateField(ctx context.Context, id, field string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("%w: %w", ErrUpdateFailed, ErrUserNotFound)
	}
	doc[field] = value
	return nil
}

func (r *userMemory) Search(ctx context.Context, query elastic.Query) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		buf, err := json.Marshal(r.docs[id])
		if err != nil {
			return nil, err
		}
		var u model.User
		if err := json.Unmarshal(buf, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

// Snapshot returns a copy of every stored document keyed by id.
func (r *userMemory) Snapshot() map[string]map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]map[string]any, len(r.docs))
	for id, doc := range r.docs {
		cp := make(map[string]any, len(doc))
		for k, v := range doc {
			cp[k] = v
		}
		out[id] = cp
	}

	return out
}

func (r *userMemory) BulkCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bulks
}

func toFields(u model.User) (map[string]any, error) {
	buf, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}
