package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/soryntech/portfolio-api/internal/config"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// ImgBBClient streams validated images to the image host and returns their
// public URL.
type ImgBBClient struct {
	uploadURL string
	apiKey    string
	client    *http.Client
}

// NewImgBBClient builds the client.
func NewImgBBClient(cfg config.ImgBBConfig, timeout time.Duration) *ImgBBClient {
	return &ImgBBClient{
		uploadURL: cfg.UploadURL,
		apiKey:    cfg.APIKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one image file and returns its public URL.
func (c *ImgBBClient) Upload(ctx context.Context, filename, contentType string, file io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewConfigurationError([]string{"IMGBB_API_KEY"})
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if err := form.Close(); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	endpoint := c.uploadURL + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamUnreachable(err)
	}
	defer resp.Body.Close()

	var parsed imgbbResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.NewUpstreamError(resp.StatusCode)
	}
	if decodeErr != nil || !parsed.Success {
		// A 2xx without a success flag still means the host rejected it.
		return "", apperrors.NewUpstreamError(http.StatusBadGateway)
	}

	if parsed.Data.URL != "" {
		return parsed.Data.URL, nil
	}
	return parsed.Data.DisplayURL, nil
}
