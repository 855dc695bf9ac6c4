// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/certview/internal/config"
)

// DocumentDelivery hands a document URL over to the visitor's browser.
type DocumentDelivery interface {
	// Download makes the browser save documentURL under filename.
	Download(ctx context.Context, w http.ResponseWriter, r *http.Request, documentURL, filename string) error
	// OpenExternal sends the browser to targetURL unchanged.
	OpenExternal(w http.ResponseWriter, r *http.Request, targetURL string)
}

type StorageService struct {
	s3Client   *s3.S3
	httpClient *http.Client
	config     *config.Config
	logger     *logrus.Logger
}

func NewStorageService(config *config.Config, logger *logrus.Logger) (*StorageService, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &StorageService{
		httpClient: &http.Client{
			Timeout: time.Duration(config.Documents.FetchTimeout) * time.Second,
		},
		config: config,
		logger: logger,
	}

	if !config.AWS.S3Enabled() {
		// Documents are streamed through the proxy only
		return s, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s.s3Client = s3.New(sess)
	return s, nil
}

func (s *StorageService) Download(ctx context.Context, w http.ResponseWriter, r *http.Request, documentURL, filename string) error {
	if key, ok := s.objectKey(documentURL); ok && s.s3Client != nil {
		signed, err := s.presignDownload(key, filename)
		if err == nil {
			documentDeliveriesTotal.WithLabelValues("presigned").Inc()
			http.Redirect(w, r, signed, http.StatusFound)
			return nil
		}
		s.logger.WithError(err).WithField("key", key).Warn("Presigning document failed, streaming instead")
	}

	return s.proxyDownload(ctx, w, documentURL, filename)
}

func (s *StorageService) OpenExternal(w http.ResponseWriter, r *http.Request, targetURL string) {
	http.Redirect(w, r, targetURL, http.StatusFound)
}

func (s *StorageService) presignDownload(key, filename string) (string, error) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(s.config.AWS.S3Bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(ContentDisposition(filename)),
		ResponseContentType:        aws.String("application/pdf"),
	})

	signed, err := req.Presign(time.Duration(s.config.AWS.PresignTTL) * time.Second)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return signed, nil
}

func (s *StorageService) proxyDownload(ctx context.Context, w http.ResponseWriter, documentURL, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDocumentFetchFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDocumentFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: upstream returned %d", ErrDocumentFetchFailed, resp.StatusCode)
	}

	maxSize := int64(s.config.Documents.MaxSizeMB) * 1024 * 1024
	if maxSize > 0 && resp.ContentLength > maxSize {
		return fmt.Errorf("%w: document size %d bytes exceeds %d bytes", ErrDocumentFetchFailed, resp.ContentLength, maxSize)
	}

	body := io.Reader(resp.Body)
	length := resp.ContentLength

	// Without a declared length the cap can only be checked by reading, so the
	// document is buffered before anything reaches the client.
	if maxSize > 0 && length < 0 {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDocumentFetchFailed, err)
		}
		if int64(len(data)) > maxSize {
			return fmt.Errorf("%w: document exceeds %d bytes", ErrDocumentFetchFailed, maxSize)
		}
		body = bytes.NewReader(data)
		length = int64(len(data))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", ContentDisposition(filename))
	if length >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		return fmt.Errorf("failed to stream document: %w", err)
	}

	documentDeliveriesTotal.WithLabelValues("proxied").Inc()
	return nil
}

// objectKey maps a document URL to a key in the configured bucket, accepting
// both the CloudFront and the virtual-hosted S3 forms produced by ObjectURL.
func (s *StorageService) objectKey(documentURL string) (string, bool) {
	if s.config.AWS.S3Bucket == "" {
		return "", false
	}

	u, err := url.Parse(documentURL)
	if err != nil || u.Scheme != "https" {
		return "", false
	}

	if cf := s.config.AWS.CloudFrontURL; cf != "" {
		if base, err := url.Parse(cf); err == nil && base.Host == u.Host {
			key := strings.TrimPrefix(strings.TrimPrefix(u.Path, strings.TrimSuffix(base.Path, "/")), "/")
			return key, key != ""
		}
	}

	bucketHosts := []string{
		fmt.Sprintf("%s.s3.%s.amazonaws.com", s.config.AWS.S3Bucket, s.config.AWS.Region),
		fmt.Sprintf("%s.s3.amazonaws.com", s.config.AWS.S3Bucket),
	}
	for _, host := range bucketHosts {
		if u.Host == host {
			key := strings.TrimPrefix(u.Path, "/")
			return key, key != ""
		}
	}

	return "", false
}

// ObjectURL is the public URL of key, preferring the CloudFront distribution.
func (s *StorageService) ObjectURL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

// ContentDisposition builds an attachment header value. Non-ASCII file names
// are encoded per RFC 2231.
func ContentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
