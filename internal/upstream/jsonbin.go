package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/soryntech/portfolio-api/internal/config"
	"github.com/soryntech/portfolio-api/internal/domain"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// JSONBinStore proxies the content document to a JSONBin bin. Responses wrap
// the document in a "record" envelope, which is unwrapped before returning.
type JSONBinStore struct {
	baseURL string
	binID   string
	apiKey  string
	client  *http.Client
}

// NewJSONBinStore builds the store client. Missing bin ID or API key is
// reported per request as a configuration error, not at startup, so the
// service still boots for operators to inspect.
func NewJSONBinStore(cfg config.JSONBinConfig, timeout time.Duration) *JSONBinStore {
	return &JSONBinStore{
		baseURL: cfg.BaseURL,
		binID:   cfg.BinID,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *JSONBinStore) missingConfig() []string {
	var missing []string
	if s.binID == "" {
		missing = append(missing, "JSONBIN_BIN_ID")
	}
	if s.apiKey == "" {
		missing = append(missing, "JSONBIN_API_KEY")
	}
	return missing
}

// Load fetches the latest document revision.
func (s *JSONBinStore) Load(ctx context.Context) (domain.Document, error) {
	if missing := s.missingConfig(); len(missing) > 0 {
		return nil, apperrors.NewConfigurationError(missing)
	}

	url := fmt.Sprintf("%s/b/%s/latest", s.baseURL, s.binID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("X-Master-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, apperrors.NewUpstreamError(resp.StatusCode)
	}
	return decodeRecord(resp.Body)
}

// Replace overwrites the document and returns the stored result.
func (s *JSONBinStore) Replace(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if missing := s.missingConfig(); len(missing) > 0 {
		return nil, apperrors.NewConfigurationError(missing)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/b/%s", s.baseURL, s.binID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, apperrors.NewUpstreamError(resp.StatusCode)
	}

	stored, err := decodeRecord(resp.Body)
	if err != nil {
		// Some write responses omit the record envelope; the submitted
		// document is the authoritative result then.
		return doc, nil
	}
	return stored, nil
}

// decodeRecord unwraps the JSONBin {"record": ...} envelope, falling back to
// the raw body when no envelope is present.
func decodeRecord(r io.Reader) (domain.Document, error) {
	var body map[string]any
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	if rec, ok := body["record"].(map[string]any); ok {
		return domain.Document(rec), nil
	}
	return domain.Document(body), nil
}
