package hatena

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/univac-1/ai-info-rss-feed/internal"
)

const countEndpoint = "https://bookmark.hatenaapis.com/count/entries"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client queries the Hatena bookmark count API in batches.
type Client struct {
	// BaseURL points at the count endpoint; tests override it.
	BaseURL string

	log       *slog.Logger
	client    *http.Client
	batchSize int
}

func NewClient(log *slog.Logger) *Client {
	return &Client{
		BaseURL:   countEndpoint,
		log:       log,
		client:    &http.Client{Timeout: 30 * time.Second},
		batchSize: internal.HatenaBatchSize,
	}
}

// Counts fetches bookmark counts for all URLs, batch by batch. A failed batch
// is logged and its URLs stay absent from the result (downstream treats them
// as zero); remaining batches still run. The only returned error is context
// cancellation.
func (c *Client) Counts(ctx context.Context, urls []string) (map[string]int, error) {
	c.log.Info("fetching hatena counts", slog.Int("count", len(urls)))

	counts := make(map[string]int)
	for _, batch := range Batches(urls, c.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := c.fetchBatch(ctx, batch)
		if err != nil {
			c.log.Warn("hatena count batch failed",
				slog.Int("size", len(batch)),
				slog.Any("err", err),
			)
			continue
		}
		for k, v := range m {
			counts[k] = v
		}
	}

	c.log.Info("hatena count fetch complete", slog.Int("fetched", len(counts)))
	return counts, nil
}

func (c *Client) fetchBatch(ctx context.Context, batch []string) (map[string]int, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	for _, link := range batch {
		q.Add("url", link)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var counts map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// Batches splits urls into chunks of at most size elements, keeping order.
func Batches(urls []string, size int) [][]string {
	if size <= 0 || len(urls) == 0 {
		return nil
	}
	var batches [][]string
	for start := 0; start < len(urls); start += size {
		end := start + size
		if end > len(urls) {
			end = len(urls)
		}
		batches = append(batches, urls[start:end])
	}
	return batches
}
