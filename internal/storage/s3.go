package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the configuration for S3 mirroring.
type S3Config struct {
	Bucket          string
	Region          string
	Prefix          string // Optional: key prefix for all uploaded objects
	Endpoint        string // Optional: for custom S3-compatible endpoints
	AccessKeyID     string // Optional: AWS access key ID
	SecretAccessKey string // Optional: AWS secret access key
}

// S3Sink wraps a LocalSink and mirrors every object to an S3 bucket so
// datasets land directly in training storage.
type S3Sink struct {
	*LocalSink
	client *s3.Client
	bucket string
	region string
	prefix string
}

// NewS3Sink creates an S3Sink writing locally under root and uploading
// to the configured bucket.
func NewS3Sink(root string, cfg S3Config) (*S3Sink, error) {
	local, err := NewLocalSink(root)
	if err != nil {
		return nil, err
	}

	var configOpts []func(*config.LoadOptions) error
	configOpts = append(configOpts, config.WithRegion(cfg.Region))

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, clientOpts...)

	return &S3Sink{
		LocalSink: local,
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		prefix:    cfg.Prefix,
	}, nil
}

// Put writes the object locally, then uploads the same bytes to S3.
func (s *S3Sink) Put(ctx context.Context, relPath string, data io.Reader) error {
	var buf bytes.Buffer
	if err := s.LocalSink.Put(ctx, relPath, io.TeeReader(data, &buf)); err != nil {
		return err
	}

	key := path.Join(s.prefix, relPath)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   &buf,
	})
	if err != nil {
		return fmt.Errorf("upload to S3: %w", err)
	}
	return nil
}

// ObjectURL returns the public URL for an uploaded object.
func (s *S3Sink) ObjectURL(relPath string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, path.Join(s.prefix, relPath))
}

// Verify interface implementation at compile time.
var _ Sink = (*S3Sink)(nil)
