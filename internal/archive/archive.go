// Package archive keeps a copy of every uploaded XML document in S3-compatible
// object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store archives one uploaded document and returns its object key.
type Store interface {
	Put(ctx context.Context, filename, uploadedBy string, content []byte) (string, error)
}

// Noop discards documents. Used when no bucket is configured.
type Noop struct{}

func (Noop) Put(ctx context.Context, filename, uploadedBy string, content []byte) (string, error) {
	return "", nil
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds object storage settings.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type S3Store struct {
	client putObjectAPI
	bucket string
	now    func() time.Time
}

// NewS3Store builds a store from cfg. Static credentials are used when an
// access key is given, otherwise the default AWS chain applies. A custom
// endpoint (MinIO) switches to path-style addressing.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// ObjectKey places documents under xml/<yyyy>/<mm>/<dd>/<uuid>-<name>.
func (s *S3Store) ObjectKey(filename string) string {
	d := s.now().UTC()
	name := strings.ReplaceAll(path.Base(filename), " ", "_")
	return fmt.Sprintf("xml/%04d/%02d/%02d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), name)
}

func (s *S3Store) Put(ctx context.Context, filename, uploadedBy string, content []byte) (string, error) {
	key := s.ObjectKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String("application/xml"),
		Metadata: map[string]string{
			"original-filename": metadataValue(path.Base(filename)),
			"uploaded-by":       metadataValue(uploadedBy),
		},
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", filename, err)
	}
	return key, nil
}

// metadataValue makes v safe for S3 user metadata, which travels in HTTP
// headers: non-ASCII text is sent as an RFC 2047 encoded word.
func metadataValue(v string) string {
	return mime.QEncoding.Encode("utf-8", v)
}
