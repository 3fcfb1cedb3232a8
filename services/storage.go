package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/devshowcase/backend/config"
)

// ObjectStorage stores uploaded files in a named bucket and returns the
// public URL they will be served from.
type ObjectStorage interface {
	Put(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error)
}

// S3Storage uploads objects to S3 or any S3-compatible store (a custom
// endpoint switches the client to path-style addressing).
type S3Storage struct {
	client        *s3.Client
	publicBaseURL string
}

// NewS3Storage builds the storage client from the process environment.
// Credentials and region resolve through the standard AWS config chain;
// S3_ENDPOINT and S3_PUBLIC_URL override the endpoint and the advertised
// public base URL.
func NewS3Storage(ctx context.Context, cfg map[string]string) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	endpoint := config.GetString(cfg, "S3_ENDPOINT", "")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := config.GetString(cfg, "S3_PUBLIC_URL", endpoint)
	if publicBaseURL == "" {
		return nil, fmt.Errorf("S3_PUBLIC_URL is required when S3_ENDPOINT is not set")
	}

	return &S3Storage{
		client:        client,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to bucket %s: %w", key, bucket, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, key), nil
}
