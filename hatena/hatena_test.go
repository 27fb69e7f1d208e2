package hatena

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBatches(t *testing.T) {
	urls := make([]string, 120)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://x.test/%d", i)
	}

	batches := Batches(urls, 50)
	require.Len(t, batches, 3)
	require.Len(t, batches[0], 50)
	require.Len(t, batches[1], 50)
	require.Len(t, batches[2], 20)
	require.Equal(t, "https://x.test/0", batches[0][0])
	require.Equal(t, "https://x.test/119", batches[2][19])

	require.Nil(t, Batches(nil, 50))
	require.Len(t, Batches(urls[:50], 50), 1)
}

func TestCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls := r.URL.Query()["url"]
		counts := make(map[string]int, len(urls))
		for i, u := range urls {
			counts[u] = i + 1
		}
		w.Header().Set("Content-Type", "application/json")
		body, _ := json.Marshal(counts)
		w.Write(body)
	}))
	defer srv.Close()

	c := NewClient(discardLogger())
	c.BaseURL = srv.URL

	got, err := c.Counts(context.Background(), []string{"https://x.test/a", "https://x.test/b"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"https://x.test/a": 1, "https://x.test/b": 2}, got)
}

func TestCountsDropsFailedBatch(t *testing.T) {
	// 60 URLs split into a batch of 50 and a batch of 10; the first batch
	// fails and only the second one's counts survive.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls := r.URL.Query()["url"]
		for _, u := range urls {
			if strings.HasSuffix(u, "/0") {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		counts := make(map[string]int, len(urls))
		for _, u := range urls {
			counts[u] = 7
		}
		body, _ := json.Marshal(counts)
		w.Write(body)
	}))
	defer srv.Close()

	urls := make([]string, 60)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://x.test/%d", i)
	}

	c := NewClient(discardLogger())
	c.BaseURL = srv.URL

	got, err := c.Counts(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, got, 10)
	require.Equal(t, 7, got["https://x.test/59"])
	_, ok := got["https://x.test/0"]
	require.False(t, ok)
}

func TestCountsEmpty(t *testing.T) {
	c := NewClient(discardLogger())
	got, err := c.Counts(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}
