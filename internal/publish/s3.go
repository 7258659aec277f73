package publish

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
)

// ContentType is the media type of published documents.
const ContentType = "application/json"

// PutObjectAPI is the part of the S3 client used for publishing.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Receipt describes a published document.
type Receipt struct {
	Bucket   string
	Key      string
	ETag     string
	Checksum string
	Size     int
}

// S3Publisher uploads route documents to a bucket.
type S3Publisher struct {
	client PutObjectAPI
	bucket string
	logger *slog.Logger
}

// NewS3Publisher creates a publisher for bucket.
func NewS3Publisher(client PutObjectAPI, bucket string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		logger: slog.Default().With("component", "publish"),
	}
}

// WithLogger sets the logger.
func (p *S3Publisher) WithLogger(logger *slog.Logger) *S3Publisher {
	p.logger = logger.With("component", "publish")
	return p
}

// Publish uploads document under key.
func (p *S3Publisher) Publish(ctx context.Context, key string, document []byte) (*Receipt, error) {
	if p.bucket == "" {
		return nil, errors.New("E121").
			WithDetail("publish.bucket is not set").
			WithSuggestion("Set publish.bucket in " + config.ConfigFileName + " or " + config.EnvBucket)
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return nil, errors.New("E121").WithDetail("publish.key is empty")
	}

	sum := sha256.Sum256(document)
	checksum := hex.EncodeToString(sum[:])

	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(document),
		ContentType:  aws.String(ContentType),
		CacheControl: aws.String("no-cache"),
		Metadata: map[string]string{
			"fileroutes-sha256": checksum,
			"publish-time":      time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, errors.New("E144").
			WithDetail("Uploading s3://" + p.bucket + "/" + key + " failed").
			Wrap(err)
	}

	receipt := &Receipt{
		Bucket:   p.bucket,
		Key:      key,
		ETag:     strings.Trim(aws.ToString(out.ETag), `"`),
		Checksum: checksum,
		Size:     len(document),
	}
	p.logger.Info("document published", "bucket", receipt.Bucket, "key", receipt.Key, "bytes", receipt.Size)
	return receipt, nil
}

// Credentials are static S3 credentials.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// EnvCredentials reads AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN.
func EnvCredentials() Credentials {
	return Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
	}
}

// NewS3Client creates an S3 client for the publish target. A custom endpoint
// switches to path-style addressing, as S3-compatible stores expect.
func NewS3Client(cfg config.PublishConfig, creds Credentials) (*s3.Client, error) {
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, errors.New("E121").
			WithDetail("S3 credentials are not set").
			WithSuggestion("Export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, or add them to .env")
	}

	provider := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     creds.AccessKeyID,
			SecretAccessKey: creds.SecretAccessKey,
			SessionToken:    creds.SessionToken,
			Source:          "fileroutes",
		}, nil
	})

	options := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(provider),
	}
	if cfg.Endpoint != "" {
		options.BaseEndpoint = aws.String(cfg.Endpoint)
		options.UsePathStyle = true
	}
	return s3.New(options), nil
}
