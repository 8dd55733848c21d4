package livesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/processor"
	"feedback-intel-go/internal/types"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultMaxRetries  = 3
)

// HTTPSource pulls raw feedback items (a JSON array of types.RawFeedback)
// from cfg.FeedURL and classifies them locally. One Fetch, retries included,
// never runs longer than maxElapsed.
type HTTPSource struct {
	client     *http.Client
	maxElapsed time.Duration
	maxRetries uint64
	now        func() time.Time
	log        *logger.Logger
}

func NewHTTPSource(timeout time.Duration, log *logger.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPSource{
		client:     &http.Client{Timeout: timeout},
		maxElapsed: timeout,
		maxRetries: defaultMaxRetries,
		now:        time.Now,
		log:        log.Component("livesource.http"),
	}
}

// Fetch never fails: transport, auth and decode errors are logged and turned
// into an empty batch.
func (s *HTTPSource) Fetch(ctx context.Context, cfg types.LiveSourceConfig) []types.Record {
	if cfg.FeedURL == "" {
		return []types.Record{}
	}
	items, err := s.fetchRaw(ctx, cfg)
	if err != nil {
		s.log.WithError(err).WithField("feed_url", cfg.FeedURL).Warn("live feed fetch failed; falling back")
		return []types.Record{}
	}

	now := s.now()
	out := make([]types.Record, 0, len(items))
	seen := map[string]int{}
	for _, it := range items {
		if strings.TrimSpace(it.Text) == "" {
			continue
		}
		id := itemID(it, seen)
		it.Source = orUnknown(it.Source)
		it.Region = orUnknown(it.Region)
		it.Tier = orUnknown(it.Tier)
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		out = append(out, processor.ProcessFeedback(id, it))
	}
	s.log.WithField("items", len(items)).WithField("records", len(out)).Info("live feed fetched")
	return out
}

// itemID keys an item on its raw content. Identical items in one response
// are told apart by their occurrence number.
func itemID(it types.RawFeedback, seen map[string]int) string {
	created := ""
	if !it.CreatedAt.IsZero() {
		created = it.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	key := strings.Join([]string{it.Text, it.Source, it.Region, it.Tier, created}, "\x1f")
	n := seen[key]
	seen[key] = n + 1
	return processor.ContentID(key, strconv.Itoa(n))
}

func (s *HTTPSource) fetchRaw(ctx context.Context, cfg types.LiveSourceConfig) ([]types.RawFeedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.maxElapsed)
	defer cancel()

	u, err := url.Parse(cfg.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	q := u.Query()
	if cfg.AccountID != "" {
		q.Set("account_id", cfg.AccountID)
	}
	if cfg.ZoneID != "" {
		q.Set("zone_id", cfg.ZoneID)
	}
	u.RawQuery = q.Encode()

	var items []types.RawFeedback
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if cfg.APIToken != "" {
			req.Header.Set("Authorization", "Bearer "+cfg.APIToken)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = fmt.Errorf("read body: %w", err)
			return lastErr
		}

		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("feed returned %d: %s", resp.StatusCode, truncate(string(body), 200))
			if resp.StatusCode < 500 {
				// Permanent: don't retry on client errors
				return backoff.Permanent(lastErr)
			}
			return lastErr
		}
		if err := json.Unmarshal(body, &items); err != nil {
			lastErr = fmt.Errorf("json decode error: %w", err)
			return backoff.Permanent(lastErr)
		}
		lastErr = nil
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = s.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx)); err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
