package og

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/univac-1/ai-info-rss-feed/charset"
	"github.com/univac-1/ai-info-rss-feed/internal"
)

// Fetcher retrieves Open Graph preview metadata for sets of URLs.
type Fetcher struct {
	log         *slog.Logger
	client      *http.Client
	concurrency int
}

func NewFetcher(log *slog.Logger, concurrency int) *Fetcher {
	return &Fetcher{
		log:         log,
		client:      &http.Client{Timeout: internal.OgFetchTimeout},
		concurrency: concurrency,
	}
}

// FetchAll dispatches every URL concurrently under the configured bound and
// collects the results after all of them have resolved. Per-URL failures are
// logged and leave the key absent; callers must treat absence and an empty
// OgObject identically. The only returned error is context cancellation.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) (map[string]internal.OgObject, error) {
	f.log.Info("fetching og metadata", slog.Int("count", len(urls)))

	results := make([]*internal.OgObject, len(urls))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			obj, err := f.fetchOne(ctx, u)
			if err != nil {
				f.log.Warn("og fetch failed", slog.String("url", u), slog.Any("err", err))
				return nil
			}
			results[i] = obj
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := make(map[string]internal.OgObject, len(urls))
	for i, u := range urls {
		if results[i] != nil {
			m[u] = *results[i]
		}
	}
	f.log.Info("og fetch complete", slog.Int("fetched", len(m)))
	return m, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, pageURL string) (*internal.OgObject, error) {
	ctx, cancel := context.WithTimeout(ctx, internal.OgFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body := charset.Decode(raw, charset.FromContentType(resp.Header.Get("Content-Type")))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var obj internal.OgObject
	if v, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		obj.ImageURL = v
	}
	if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		obj.Description = v
	}
	return &obj, nil
}
