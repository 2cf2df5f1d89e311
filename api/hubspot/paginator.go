package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HavvokLab/contact-sync/model"
	"github.com/HavvokLab/contact-sync/pkg/logger"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
)

const (
	AfterParam = "after"
	LimitParam = "limit"
)

var (
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrMalformedResponse = errors.New("expected an array of results")
	ErrTransport         = errors.New("transport failure")
)

// HTTPStatusError reports a non-2xx page response. It matches ErrHTTPStatus.
type HTTPStatusError struct {
	Code    int
	Message string
}

func (e *HTTPStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http error! status: %d", e.Code)
	}

	return fmt.Sprintf("http error! status: %d: %s", e.Code, e.Message)
}

func (e *HTTPStatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// PageHandler processes one page. Returning an error stops pagination.
type PageHandler[T any] func(ctx context.Context, items []T) error

// PageFetcher drains a cursor paginated endpoint one page at a time. A page
// is fully handled before the next one is requested.
type PageFetcher[T any] struct {
	reqClient *req.Client
	token     string
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	logger    zerolog.Logger
}

func NewPageFetcher[T any](reqClient *req.Client, token string, delay time.Duration) *PageFetcher[T] {
	return &PageFetcher[T]{
		reqClient: reqClient,
		token:     token,
		delay:     delay,
		sleep:     sleepContext,
		logger:    logger.New("hubspot_api.log"),
	}
}

func (f *PageFetcher[T]) FetchAllPages(ctx context.Context, baseURL string, params map[string]string, onPage PageHandler[T]) error {
	var cursor string
	for page := 1; ; page++ {
		query := make(map[string]string, len(params)+1)
		for k, v := range params {
			query[k] = v
		}
		if cursor != "" {
			query[AfterParam] = cursor
		}

		items, next, err := f.fetchPage(ctx, baseURL, query)
		if err != nil {
			f.logger.Error().
				Err(err).
				Str("url", baseURL).
				Int("page", page).
				Any("query", query).
				Msg("PageFetcher::FetchAllPages() - failed to fetch page")
			return err
		}

		if err := onPage(ctx, items); err != nil {
			f.logger.Error().
				Err(err).
				Int("page", page).
				Int("count", len(items)).
				Msg("PageFetcher::FetchAllPages() - failed to process page")
			return err
		}

		if next == "" {
			f.logger.Info().Int("pages", page).Msg("PageFetcher::FetchAllPages() - all pages processed")
			return nil
		}

		if err := f.sleep(ctx, f.delay); err != nil {
			return err
		}
		cursor = next
	}
}

func (f *PageFetcher[T]) fetchPage(ctx context.Context, url string, query map[string]string) ([]T, string, error) {
	resp, err := f.reqClient.R().
		SetContext(ctx).
		SetBearerAuthToken(f.token).
		SetHeader("Content-Type", "application/json").
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResult model.ApiErrorResponse
		_ = json.Unmarshal(body, &errorResult)
		f.logger.Error().
			Str("url", url).
			Int("status_code", resp.StatusCode).
			Any("error_response", errorResult).
			Any("query", query).
			Msg("PageFetcher::fetchPage() - unexpected status")
		return nil, "", &HTTPStatusError{Code: resp.StatusCode, Message: errorMessage(errorResult)}
	}

	var page pageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	raw := bytes.TrimSpace(page.Results)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, "", ErrMalformedResponse
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	f.logger.Debug().
		Str("url", url).
		Int("status_code", resp.StatusCode).
		Int("count", len(items)).
		Any("query", query).
		Msg("PageFetcher::fetchPage() - page fetched")

	return items, page.nextCursor(), nil
}

func errorMessage(e model.ApiErrorResponse) string {
	if len(e) == 0 {
		return ""
	}

	return e.Message()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
