// Package publish uploads rendered reports to object storage.
package publish

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/config"
)

// Publisher delivers a rendered report to its destination.
type Publisher interface {
	PublishReport(ctx context.Context, body []byte) error
}

// S3Publisher uploads the HTML report to a fixed S3 object, typically behind
// a static website endpoint.
type S3Publisher struct {
	client *s3.Client
	bucket string
	key    string
	logger *logrus.Logger
}

// NewS3Publisher creates a publisher from the publish config. Credentials
// come from the default AWS chain.
func NewS3Publisher(ctx context.Context, cfg *config.PublishConfig, logger *logrus.Logger) (*S3Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("publish config is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("publish bucket is required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("publish key is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("publish region is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Publisher{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		key:    cfg.Key,
		logger: logger,
	}, nil
}

// PublishReport uploads the report body, replacing the previous object.
func (p *S3Publisher) PublishReport(ctx context.Context, body []byte) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
		Body:   bytes.NewReader(body),
		// The report is regenerated every scan; never let caches pin an
		// old one.
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return fmt.Errorf("failed to publish report to s3://%s/%s: %w", p.bucket, p.key, err)
	}

	p.logger.WithFields(logrus.Fields{
		"bucket": p.bucket,
		"key":    p.key,
		"bytes":  len(body),
	}).Info("Report published")

	return nil
}
