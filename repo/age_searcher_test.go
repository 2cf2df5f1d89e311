package repo

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/HavvokLab/contact-sync/pkg/testutil"
	"github.com/HavvokLab/contact-sync/query"
	"github.com/HavvokLab/contact-sync/setting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestRuntimeAgeSearcher(t *testing.T) {
	es := testutil.NewFakeElastic(t)
	es.On("/users/_search", http.StatusOK, testutil.SearchHits(
		[]string{`{"fName":"John","lName":"Patrick","dateOfBirth":"1990-05-17"}`},
		[]string{`{"age":[34]}`},
	))

	s := NewRuntimeAgeSearcher(es.Client(t), setting.UsersIndex)
	s.now = func() time.Time { return fixedNow }

	users, err := s.SearchByExactAge(context.Background(), 34)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "John", users[0].FName)
	require.NotNil(t, users[0].Age)
	assert.Equal(t, 34, *users[0].Age)

	searches := es.RequestsTo("/users/_search")
	require.Len(t, searches, 1)
	body := searches[0].JSON(t)

	assert.Equal(t, []any{"age"}, body["fields"])
	assert.Equal(t, map[string]any{"match": map[string]any{"age": map[string]any{"query": float64(34)}}}, body["query"])

	mappings := body["runtime_mappings"].(map[string]any)
	age := mappings["age"].(map[string]any)
	assert.Equal(t, "long", age["type"])
	script := age["script"].(map[string]any)
	assert.Equal(t, query.AgeScript, script["source"])
	assert.Equal(t, float64(fixedNow.UnixMilli()), script["params"].(map[string]any)["now"])
}

func TestLocalAgeSearcher(t *testing.T) {
	es := testutil.NewFakeElastic(t)
	es.On("/users/_search", http.StatusOK, testutil.ScrollHits("scroll-1", []string{
		`{"fName":"Year And A Day","dateOfBirth":"2023-06-14T00:00:00Z"}`,
		`{"fName":"No Birth Date"}`,
	}))
	es.OnMethod(http.MethodPost, "/_search/scroll", http.StatusOK, testutil.ScrollHits("scroll-1", []string{
		`{"fName":"Older","dateOfBirth":"1990-01-01"}`,
		`{"fName":"Tomorrow","dateOfBirth":"2022-06-16"}`,
		`{"fName":"Next Year","dateOfBirth":"2023-06-16"}`,
	}))
	es.OnMethod(http.MethodDelete, "/_search/scroll", http.StatusOK, testutil.ClearScrollOK)

	s := NewLocalAgeSearcher(es.Client(t), setting.UsersIndex)
	s.batchSize = 2
	s.now = func() time.Time { return fixedNow }

	users, err := s.SearchByExactAge(context.Background(), 1)
	require.NoError(t, err)

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.FName)
		assert.Equal(t, 1, *u.Age)
	}
	assert.Equal(t, []string{"Year And A Day", "Tomorrow"}, names)

	searches := es.RequestsTo("/users/_search")
	require.Len(t, searches, 1)
	assert.Contains(t, searches[0].Query, "scroll="+ScrollKeepAlive)

	var continued, cleared int
	for _, r := range es.RequestsTo("/_search/scroll") {
		switch r.Method {
		case http.MethodPost:
			continued++
		case http.MethodDelete:
			cleared++
		}
	}
	assert.Equal(t, 1, continued)
	assert.Equal(t, 1, cleared)
}

func TestLocalAgeSearcherEmptyIndex(t *testing.T) {
	es := testutil.NewFakeElastic(t)
	es.On("/users/_search", http.StatusOK, testutil.SearchHits(nil, nil))

	users, err := NewLocalAgeSearcher(es.Client(t), setting.UsersIndex).SearchByExactAge(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLocalAgeSearcherScrollError(t *testing.T) {
	es := testutil.NewFakeElastic(t)
	es.On("/users/_search", http.StatusOK, testutil.ScrollHits("scroll-1", []string{
		`{"fName":"A","dateOfBirth":"2023-06-14"}`,
		`{"fName":"B","dateOfBirth":"2023-06-14"}`,
	}))
	es.OnMethod(http.MethodPost, "/_search/scroll", http.StatusInternalServerError, `{"error":{"type":"exception","reason":"boom"},"status":500}`)

	s := NewLocalAgeSearcher(es.Client(t), setting.UsersIndex)
	s.batchSize = 2
	s.now = func() time.Time { return fixedNow }

	_, err := s.SearchByExactAge(context.Background(), 1)
	assert.Error(t, err)
}

func TestNewAgeSearcher(t *testing.T) {
	es := testutil.NewFakeElastic(t)
	client := es.Client(t)

	s, err := NewAgeSearcher("", client, setting.UsersIndex)
	require.NoError(t, err)
	assert.IsType(t, &runtimeAgeSearcher{}, s)

	s, err = NewAgeSearcher(setting.AgeStrategyLocal, client, setting.UsersIndex)
	require.NoError(t, err)
	assert.IsType(t, &localAgeSearcher{}, s)

	_, err = NewAgeSearcher("painless", client, setting.UsersIndex)
	assert.Error(t, err)
}
