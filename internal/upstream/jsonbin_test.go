package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soryntech/portfolio-api/internal/config"
	"github.com/soryntech/portfolio-api/internal/domain"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

func newTestStore(baseURL string) *JSONBinStore {
	return NewJSONBinStore(config.JSONBinConfig{
		BaseURL: baseURL,
		BinID:   "bin-123",
		APIKey:  "master-key",
	}, time.Second)
}

func TestJSONBinLoad_UnwrapsRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/b/bin-123/latest", r.URL.Path)
		require.Equal(t, "master-key", r.Header.Get("X-Master-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"record":{"profile":{"name":"Soryn"}},"metadata":{"id":"bin-123"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	doc, err := newTestStore(srv.URL).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Document{"profile": map[string]any{"name": "Soryn"}}, doc)
}

func TestJSONBinLoad_UpstreamStatusMapping(t *testing.T) {
	t.Parallel()

	status := http.StatusTooManyRequests
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	store := newTestStore(srv.URL)

	// Non-5xx passes through with the upstream status attached.
	_, err := store.Load(context.Background())
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, http.StatusTooManyRequests, domainErr.HTTPStatus)
	require.Equal(t, http.StatusTooManyRequests, domainErr.Details["status"])

	// 5xx is always normalized to 502.
	status = http.StatusServiceUnavailable
	_, err = store.Load(context.Background())
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	require.Equal(t, http.StatusServiceUnavailable, domainErr.Details["status"])
}

func TestJSONBinReplace_SendsDocument(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/b/bin-123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"record":{"bots":["new-bot"]}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	doc, err := newTestStore(srv.URL).Replace(context.Background(), domain.Document{"bots": []any{"new-bot"}})
	require.NoError(t, err)
	require.Equal(t, domain.Document{"bots": []any{"new-bot"}}, doc)
}

func TestJSONBin_MissingConfig(t *testing.T) {
	t.Parallel()

	store := NewJSONBinStore(config.JSONBinConfig{BaseURL: "http://unused"}, time.Second)

	_, err := store.Load(context.Background())
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	require.Equal(t, []string{"JSONBIN_BIN_ID", "JSONBIN_API_KEY"}, domainErr.Details["missing"])
}
