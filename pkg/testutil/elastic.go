// Package testutil provides an in-process Elasticsearch stand-in for tests.
package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/require"
)

type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// Lines splits an NDJSON body (bulk requests) into decoded objects.
func (r Request) Lines(t *testing.T) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(r.Body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obj map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &obj))
		lines = append(lines, obj)
	}

	return lines
}

// JSON decodes a single JSON body.
func (r Request) JSON(t *testing.T) map[string]any {
	t.Helper()

	var obj map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &obj))
	return obj
}

type Response struct {
	Status int
	Body   string
}

// FakeElastic answers requests by suffix match on the URL path. Unmatched
// requests get 404.
type FakeElastic struct {
	mu        sync.Mutex
	requests  []Request
	responses map[string]Response
	server    *httptest.Server
}

func NewFakeElastic(t *testing.T) *FakeElastic {
	t.Helper()

	f := &FakeElastic{responses: map[string]Response{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *FakeElastic) URL() string {
	return f.server.URL
}

// On registers the response for requests whose path ends with suffix.
func (f *FakeElastic) On(suffix string, status int, body string) {
	f.OnMethod("", suffix, status, body)
}

// OnMethod is On restricted to one HTTP method. Method specific responses
// win over generic ones.
func (f *FakeElastic) OnMethod(method, suffix string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+suffix] = Response{Status: status, Body: body}
}

func (f *FakeElastic) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// RequestsTo returns the recorded requests whose path ends with suffix.
func (f *FakeElastic) RequestsTo(suffix string) []Request {
	var out []Request
	for _, r := range f.Requests() {
		if strings.HasSuffix(r.Path, suffix) {
			out = append(out, r)
		}
	}

	return out
}

func (f *FakeElastic) Client(t *testing.T) *elastic.Client {
	t.Helper()

	client, err := elastic.NewClient(
		elastic.SetURL(f.server.URL),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	require.NoError(t, err)
	return client
}

func (f *FakeElastic) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
	})

	resp, found := Response{}, false
	longest := -1
	for key, candidate := range f.responses {
		method, suffix, _ := strings.Cut(key, " ")
		if method != "" && method != r.Method {
			continue
		}
		if !strings.HasSuffix(r.URL.Path, suffix) {
			continue
		}
		// Longer suffixes win; on a tie the method specific entry wins.
		score := len(suffix) * 2
		if method != "" {
			score++
		}
		if score > longest {
			resp, found, longest = candidate, true, score
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"not_found","reason":"no fake response"},"status":404}`))
		return
	}

	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}

const (
	BulkOK       = `{"took":1,"errors":false,"items":[]}`
	UpdateOK     = `{"_index":"users","_id":"1","_version":2,"result":"updated"}`
	UpdateAbsent = `{"error":{"type":"document_missing_exception","reason":"[1]: document missing"},"status":404}`
)

// SearchHits builds a search response body from hit sources and optional
// fields, paired by position.
func SearchHits(sources []string, fields []string) string {
	hits := make([]string, 0, len(sources))
	for i, src := range sources {
		hit := `{"_index":"users","_id":"` + itoa(i+1) + `","_source":` + src
		if i < len(fields) && fields[i] != "" {
			hit += `,"fields":` + fields[i]
		}
		hits = append(hits, hit+"}")
	}

	return `{"took":1,"timed_out":false,"hits":{"total":{"value":` + itoa(len(hits)) +
		`,"relation":"eq"},"hits":[` + strings.Join(hits, ",") + `]}}`
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}

// ScrollHits is SearchHits carrying a scroll id, as returned by the first and
// every following request of a scroll.
func ScrollHits(scrollID string, sources []string) string {
	return `{"_scroll_id":"` + scrollID + `",` + strings.TrimPrefix(SearchHits(sources, nil), "{")
}

const ClearScrollOK = `{"succeeded":true,"num_freed":1}`
