package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// ClientConfig holds configuration for S3-compatible storage
type ClientConfig struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Wasabi-specific settings
	WasabiEndpoint string // e.g., "s3.ap-southeast-1.wasabisys.com"

	// Optional public base URL (CDN or bucket website). Defaults to the
	// provider's virtual-hosted URL when empty.
	PublicBaseURL string
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"eu-west-2":      "s3.eu-west-2.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-northeast-2": "s3.ap-northeast-2.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

// NewClientConfigFromEnv creates S3 config from environment variables
func NewClientConfigFromEnv() ClientConfig {
	provider := ProviderAWS
	if os.Getenv("S3_PROVIDER") == "wasabi" {
		provider = ProviderWasabi
	}

	cfg := ClientConfig{
		Provider:        provider,
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Region:          os.Getenv("S3_REGION"),
		Bucket:          os.Getenv("S3_BUCKET"),
		PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	// For Wasabi, allow custom endpoint override
	if provider == ProviderWasabi {
		if endpoint := os.Getenv("WASABI_ENDPOINT"); endpoint != "" {
			cfg.WasabiEndpoint = endpoint
		} else if endpoint, ok := WasabiEndpoints[cfg.Region]; ok {
			cfg.WasabiEndpoint = endpoint
		} else {
			cfg.WasabiEndpoint = "s3.us-east-1.wasabisys.com"
		}
	}

	return cfg
}

// IsConfigured reports whether enough settings are present to upload.
func (c ClientConfig) IsConfigured() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

// ObjectStore uploads interpreter assets and returns durable URLs.
type ObjectStore struct {
	client *s3.Client
	cfg    ClientConfig
}

// NewObjectStore creates an object store backed by AWS S3 or Wasabi
func NewObjectStore(ctx context.Context, cfg ClientConfig) (*ObjectStore, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client

	switch cfg.Provider {
	case ProviderWasabi:
		// Wasabi requires custom endpoint and path-style addressing
		s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.WasabiEndpoint)
			o.UsePathStyle = true
		})
	default:
		s3Client = s3.NewFromConfig(awsCfg)
	}

	return &ObjectStore{client: s3Client, cfg: cfg}, nil
}

// Put uploads an object and returns its durable public URL.
func (o *ObjectStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return o.URLFor(key), nil
}

// Delete removes an object. Missing objects are not an error.
func (o *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.cfg.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// URLFor returns the public URL for an object key.
func (o *ObjectStore) URLFor(key string) string {
	if o.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", o.cfg.PublicBaseURL, key)
	}
	if o.cfg.Provider == ProviderWasabi {
		return fmt.Sprintf("https://%s/%s/%s", o.cfg.WasabiEndpoint, o.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", o.cfg.Bucket, o.cfg.Region, key)
}

// TestConnection tests the S3/Wasabi connection by listing bucket contents
func (o *ObjectStore) TestConnection(ctx context.Context) error {
	_, err := o.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(o.cfg.Bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", o.cfg.Bucket, err)
	}
	return nil
}
