package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"

	"fileshare-api/config"
)

// MaxUploadBytes is the hard per-object cap. Oversized uploads are
// rejected before a single byte leaves the process.
const MaxUploadBytes = int64(50 << 20)

const presignTTL = 15 * time.Minute

var (
	ErrTooLarge = errors.New("object exceeds maximum upload size")
	ErrNotFound = errors.New("object not found")
)

type Client struct {
	logger   *zap.Logger
	api      *s3.S3
	uploader *s3manager.Uploader
	region   string
	bucket   string
}

func New(ctx context.Context, logger *zap.Logger, cfg config.S3) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}

	api := s3.New(sess)

	return &Client{
		logger:   logger,
		api:      api,
		uploader: s3manager.NewUploaderWithClient(api),
		region:   cfg.Region,
		bucket:   cfg.BucketUploads,
	}, nil
}

// Upload streams r to the bucket under key via a multipart transfer and
// blocks until the object is durably stored. progress, when non-nil, is
// called with a monotonically non-decreasing ratio in [0,1]; it receives
// 1 only after the store confirmed completion. Abandoning the context
// abandons the transfer; partially uploaded parts are not reclaimed here.
func (c *Client) Upload(
	ctx context.Context,
	key string,
	r io.Reader,
	size int64,
	contentType string,
	progress func(float64),
) (string, error) {
	if size > MaxUploadBytes {
		return "", ErrTooLarge
	}

	body := r
	if progress != nil && size > 0 {
		body = &progressReader{r: r, total: size, report: progress}
	}

	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %q: %w", key, err)
	}

	if progress != nil {
		progress(1)
	}

	return key, nil
}

// DownloadURL returns a presigned GET for direct client retrieval.
func (c *Client) DownloadURL(key string) (string, error) {
	req, _ := c.api.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", key, err)
	}

	return url, nil
}

// PublicURL is the stable locator persisted in metadata; DownloadURL is
// what callers should hand to clients.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.api.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return ErrNotFound
		}
		return fmt.Errorf("s3 delete %q: %w", key, err)
	}

	return nil
}

func (c *Client) Bucket() string { return c.bucket }

// progressReader reports the upload ratio as the body is consumed.
// s3manager may retry parts, so the ratio is clamped to stay
// non-decreasing and never exceed 1 before completion.
type progressReader struct {
	r      io.Reader
	total  int64
	report func(float64)

	mu   sync.Mutex
	read int64
	last float64
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.mu.Lock()
		pr.read += int64(n)
		ratio := float64(pr.read) / float64(pr.total)
		if ratio > 0.99 {
			ratio = 0.99
		}
		if ratio > pr.last {
			pr.last = ratio
			pr.mu.Unlock()
			pr.report(ratio)
			return n, err
		}
		pr.mu.Unlock()
	}
	return n, err
}
