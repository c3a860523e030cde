package service

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soryntech/portfolio-api/internal/config"
	"github.com/soryntech/portfolio-api/internal/upstream"
)

// fileHeader fabricates a multipart header without materializing the file
// bytes, for tests that must be rejected before the file is opened.
func fileHeader(size int64, contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "art.png",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

// realFileHeader builds a parseable multipart file for the happy path.
func realFileHeader(t *testing.T, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="art.png"`)
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	_, fh, err := req.FormFile("image")
	require.NoError(t, err)
	return fh
}

func newUploadService(uploadURL, apiKey string) *UploadService {
	return NewUploadService(upstream.NewImgBBClient(config.ImgBBConfig{
		UploadURL: uploadURL,
		APIKey:    apiKey,
	}, time.Second))
}

func TestUpload_RejectsDisallowedMIME(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := newUploadService(srv.URL, "key")
	_, err := svc.Upload(context.Background(), fileHeader(1024, "application/pdf"))
	requireStatus(t, err, 400)
	require.False(t, called, "rejected uploads must never reach the image host")
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	t.Parallel()

	svc := newUploadService("http://unused", "key")
	_, err := svc.Upload(context.Background(), fileHeader(33<<20, "image/png"))
	requireStatus(t, err, 413)
}

func TestUpload_AtCeilingAllowed(t *testing.T) {
	t.Parallel()

	// Size exactly at the ceiling passes the size check; the fabricated
	// header then fails to open, proving the check ordering.
	svc := newUploadService("http://unused", "key")
	_, err := svc.Upload(context.Background(), fileHeader(MaxUploadBytes, "image/png"))
	requireStatus(t, err, 500)
}

func TestUpload_MissingAPIKey(t *testing.T) {
	t.Parallel()

	svc := newUploadService("http://unused", "")
	_, err := svc.Upload(context.Background(), realFileHeader(t, "image/png", []byte("png-bytes")))
	requireStatus(t, err, 500)
}

func TestUpload_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret-key", r.URL.Query().Get("key"))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "art.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success": true,
			"data":    map[string]any{"url": "https://i.ibb.co/abc/art.png"},
		})
	}))
	defer srv.Close()

	svc := newUploadService(srv.URL, "secret-key")
	url, err := svc.Upload(context.Background(), realFileHeader(t, "image/png", []byte("png-bytes")))
	require.NoError(t, err)
	require.Equal(t, "https://i.ibb.co/abc/art.png", url)
}

func TestUpload_HostRejection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":{"message":"bad image"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	svc := newUploadService(srv.URL, "key")
	_, err := svc.Upload(context.Background(), realFileHeader(t, "image/gif", []byte("gif-bytes")))
	requireStatus(t, err, 502)
}
