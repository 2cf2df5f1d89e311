package hubspot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/imroc/req/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	pages    map[string]string
	statuses map[string]int
	queries  []map[string]string
	auth     []string
}

func (s *fakeSource) handler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := map[string]string{}
	for k := range r.URL.Query() {
		q[k] = r.URL.Query().Get(k)
	}
	s.queries = append(s.queries, q)
	s.auth = append(s.auth, r.Header.Get("Authorization"))

	after := r.URL.Query().Get(AfterParam)
	if code, ok := s.statuses[after]; ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"status":"error","message":"boom"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(s.pages[after]))
}

func newTestFetcher(t *testing.T, src *fakeSource) (*PageFetcher[Contact], *[]int, *int, string) {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(src.handler))
	t.Cleanup(ts.Close)

	pagesSeen := 0
	sleptAfter := []int{}
	f := NewPageFetcher[Contact](req.C(), "token", 500*time.Millisecond)
	f.sleep = func(ctx context.Context, d time.Duration) error {
		assert.Equal(t, 500*time.Millisecond, d)
		sleptAfter = append(sleptAfter, pagesSeen)
		return nil
	}

	return f, &sleptAfter, &pagesSeen, ts.URL + "/contacts"
}

func TestFetchAllPagesThreePages(t *testing.T) {
	src := &fakeSource{pages: map[string]string{
		"":  `{"results":[{"id":"1","properties":{"firstname":"John","lastname":"Patrick"}}],"paging":{"next":{"after":"A"}}}`,
		"A": `{"results":[{"id":"2","properties":{"firstname":"Adam","lastname":"Kowalski"}}],"paging":{"next":{"after":"B"}}}`,
		"B": `{"results":[{"id":"3","properties":{"firstname":"Eve","lastname":"Nowak"}}]}`,
	}}
	f, sleptAfter, pagesSeen, url := newTestFetcher(t, src)

	var ids []string
	err := f.FetchAllPages(context.Background(), url, map[string]string{LimitParam: "10"}, func(ctx context.Context, items []Contact) error {
		*pagesSeen++
		for _, c := range items {
			ids = append(ids, c.ID)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, *pagesSeen)
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.Equal(t, []int{1, 2}, *sleptAfter)

	require.Len(t, src.queries, 3)
	assert.Equal(t, map[string]string{"limit": "10"}, src.queries[0])
	assert.Equal(t, map[string]string{"limit": "10", "after": "A"}, src.queries[1])
	assert.Equal(t, map[string]string{"limit": "10", "after": "B"}, src.queries[2])
	assert.Equal(t, "Bearer token", src.auth[0])
}

func TestFetchAllPagesTerminalCursorForms(t *testing.T) {
	bodies := map[string]string{
		"absent paging": `{"results":[]}`,
		"null next":     `{"results":[],"paging":{"next":null}}`,
		"null after":    `{"results":[],"paging":{"next":{"after":null}}}`,
		"empty after":   `{"results":[],"paging":{"next":{"after":""}}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			src := &fakeSource{pages: map[string]string{"": body}}
			f, sleptAfter, pagesSeen, url := newTestFetcher(t, src)

			err := f.FetchAllPages(context.Background(), url, nil, func(ctx context.Context, items []Contact) error {
				*pagesSeen++
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 1, *pagesSeen)
			assert.Empty(t, *sleptAfter)
		})
	}
}

func TestFetchAllPagesMalformedResponse(t *testing.T) {
	bodies := map[string]string{
		"missing results": `{"paging":{}}`,
		"null results":    `{"results":null}`,
		"object results":  `{"results":{"id":"1"}}`,
		"string results":  `{"results":"nope"}`,
		"not json":        `<html></html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			src := &fakeSource{pages: map[string]string{"": body}}
			f, _, _, url := newTestFetcher(t, src)

			called := false
			err := f.FetchAllPages(context.Background(), url, nil, func(ctx context.Context, items []Contact) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.False(t, called)
		})
	}
}

func TestFetchAllPagesHTTPStatusAbortsRun(t *testing.T) {
	src := &fakeSource{
		pages:    map[string]string{"": `{"results":[],"paging":{"next":{"after":"A"}}}`},
		statuses: map[string]int{"A": http.StatusTooManyRequests},
	}
	f, _, pagesSeen, url := newTestFetcher(t, src)

	err := f.FetchAllPages(context.Background(), url, nil, func(ctx context.Context, items []Contact) error {
		*pagesSeen++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Message)
	assert.Equal(t, 1, *pagesSeen)
}

func TestFetchAllPagesHandlerErrorStopsPagination(t *testing.T) {
	src := &fakeSource{pages: map[string]string{
		"":  `{"results":[],"paging":{"next":{"after":"A"}}}`,
		"A": `{"results":[]}`,
	}}
	f, sleptAfter, _, url := newTestFetcher(t, src)

	handlerErr := errors.New("bulk failed")
	err := f.FetchAllPages(context.Background(), url, nil, func(ctx context.Context, items []Contact) error {
		return handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
	assert.Len(t, src.queries, 1)
	assert.Empty(t, *sleptAfter)
}

func TestFetchAllPagesTransportError(t *testing.T) {
	f := NewPageFetcher[Contact](req.C().SetTimeout(time.Second), "token", 0)

	err := f.FetchAllPages(context.Background(), "http://127.0.0.1:1/contacts", nil, func(ctx context.Context, items []Contact) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSleepContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sleepContext(ctx, time.Minute), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), 0))
}
