package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/certview/internal/config"
)

func storageConfig() *config.Config {
	return &config.Config{
		AWS: config.AWSConfig{
			Region:     "eu-central-1",
			S3Bucket:   "cert-docs",
			PresignTTL: 300,
		},
		Documents: config.DocumentsConfig{FetchTimeout: 5, MaxSizeMB: 1},
	}
}

func newStorage(t *testing.T, cfg *config.Config) *StorageService {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s, err := NewStorageService(cfg, logger)
	require.NoError(t, err)
	return s
}

func TestProxyDownloadSetsAttachment(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("%PDF-1.7 body"))
	}))
	defer upstream.Close()

	s := newStorage(t, storageConfig())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/download", nil)

	err := s.Download(context.Background(), w, r, upstream.URL+"/doc.pdf", "Product Certificate_Widget.pdf")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Product Certificate_Widget.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7 body", w.Body.String())
}

func TestProxyDownloadUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	s := newStorage(t, storageConfig())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/download", nil)

	err := s.Download(context.Background(), w, r, upstream.URL+"/gone.pdf", "x.pdf")
	assert.ErrorIs(t, err, ErrDocumentFetchFailed)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestProxyDownloadRejectsOversizedDocument(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "2097152")
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	s := newStorage(t, storageConfig())
	err := s.Download(context.Background(), httptest.NewRecorder(),
		httptest.NewRequest(http.MethodGet, "/", nil), upstream.URL, "x.pdf")
	assert.ErrorIs(t, err, ErrDocumentFetchFailed)
}

func TestProxyDownloadRejectsOversizedChunkedDocument(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		w.Write(bytes.Repeat([]byte("x"), 2*1024*1024))
	}))
	defer upstream.Close()

	s := newStorage(t, storageConfig())
	w := httptest.NewRecorder()

	err := s.Download(context.Background(), w,
		httptest.NewRequest(http.MethodGet, "/", nil), upstream.URL, "x.pdf")
	assert.ErrorIs(t, err, ErrDocumentFetchFailed)
	assert.False(t, w.Flushed)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Zero(t, w.Body.Len())
}

func TestProxyDownloadChunkedDocumentWithinLimit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		w.Write([]byte("%PDF-1.7 chunked"))
	}))
	defer upstream.Close()

	s := newStorage(t, storageConfig())
	w := httptest.NewRecorder()

	err := s.Download(context.Background(), w,
		httptest.NewRequest(http.MethodGet, "/", nil), upstream.URL, "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "16", w.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.7 chunked", w.Body.String())
}

func TestDownloadPresignsBucketObjects(t *testing.T) {
	cfg := storageConfig()
	cfg.AWS.AccessKeyID = "AKIDEXAMPLE"
	cfg.AWS.SecretAccessKey = "secret"
	s := newStorage(t, cfg)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/download", nil)
	documentURL := "https://cert-docs.s3.eu-central-1.amazonaws.com/products/PRD-1/certificate.pdf"

	require.NoError(t, s.Download(context.Background(), w, r, documentURL, "Product Certificate_Widget.pdf"))

	assert.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "cert-docs.s3.eu-central-1.amazonaws.com", location.Host)
	assert.Equal(t, "/products/PRD-1/certificate.pdf", location.Path)
	assert.Equal(t, `attachment; filename="Product Certificate_Widget.pdf"`,
		location.Query().Get("response-content-disposition"))
	assert.NotEmpty(t, location.Query().Get("X-Amz-Signature"))
}

func TestObjectKey(t *testing.T) {
	cfg := storageConfig()
	cfg.AWS.CloudFrontURL = "https://cdn.example.com/files"
	s := newStorage(t, cfg)

	tests := []struct {
		url   string
		key   string
		inBkt bool
	}{
		{"https://cert-docs.s3.eu-central-1.amazonaws.com/a/b.pdf", "a/b.pdf", true},
		{"https://cert-docs.s3.amazonaws.com/c.pdf", "c.pdf", true},
		{"https://cdn.example.com/files/d/e.pdf", "d/e.pdf", true},
		{"https://other-bucket.s3.amazonaws.com/c.pdf", "", false},
		{"http://cert-docs.s3.amazonaws.com/c.pdf", "", false},
		{"https://cert-docs.s3.amazonaws.com/", "", false},
		{"://bad", "", false},
	}
	for _, tt := range tests {
		key, ok := s.objectKey(tt.url)
		assert.Equal(t, tt.inBkt, ok, tt.url)
		assert.Equal(t, tt.key, key, tt.url)
	}
}

func TestObjectURL(t *testing.T) {
	cfg := storageConfig()
	s := newStorage(t, cfg)
	assert.Equal(t, "https://cert-docs.s3.eu-central-1.amazonaws.com/p/d.pdf", s.ObjectURL("p/d.pdf"))

	cfg.AWS.CloudFrontURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/p/d.pdf", s.ObjectURL("p/d.pdf"))
}

func TestOpenExternalKeepsURL(t *testing.T) {
	s := newStorage(t, storageConfig())
	w := httptest.NewRecorder()
	target := "https://docs.example.com/a%20b.pdf?v=2#page=3"

	s.OpenExternal(w, httptest.NewRequest(http.MethodGet, "/open", nil), target)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, target, w.Header().Get("Location"))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="Declaration of Conformity_Widget.pdf"`,
		ContentDisposition("Declaration of Conformity_Widget.pdf"))
	assert.Equal(t, `attachment; filename*=utf-8''%E7%94%A2%E5%93%81%E8%AD%89%E6%9B%B8_Widget.pdf`,
		ContentDisposition("產品證書_Widget.pdf"))
}
