package og

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const ogPage = `<!DOCTYPE html>
<html>
<head>
  <meta property="og:image" content="https://img.example.test/cover.png">
  <meta property="og:description" content="An article about feeds">
  <title>page</title>
</head>
<body>hi</body>
</html>`

const plainPage = `<html><head><title>no og here</title></head><body>text</body></html>`

func TestFetchAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/with-og", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ogPage)
	})
	mux.HandleFunc("/without-og", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, plainPage)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewFetcher(discardLogger(), 4)
	got, err := f.FetchAll(context.Background(), []string{
		srv.URL + "/with-og",
		srv.URL + "/without-og",
		srv.URL + "/missing",
	})
	require.NoError(t, err)

	withOg := got[srv.URL+"/with-og"]
	require.Equal(t, "https://img.example.test/cover.png", withOg.ImageURL)
	require.Equal(t, "An article about feeds", withOg.Description)

	// Present but empty: the page had no og tags.
	withoutOg, ok := got[srv.URL+"/without-og"]
	require.True(t, ok)
	require.Empty(t, withoutOg.ImageURL)
	require.Empty(t, withoutOg.Description)

	// Failed fetches leave the key absent; downstream treats that the same
	// as an empty object.
	_, ok = got[srv.URL+"/missing"]
	require.False(t, ok)
	require.Empty(t, got[srv.URL+"/missing"].ImageURL)
}

func TestFetchAllEmpty(t *testing.T) {
	f := NewFetcher(discardLogger(), 4)
	got, err := f.FetchAll(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFetchAllCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(discardLogger(), 4)
	_, err := f.FetchAll(ctx, []string{"http://127.0.0.1:1/never"})
	require.Error(t, err)
}
