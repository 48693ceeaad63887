// Package blobstore uploads binary assets (CV exports, profile photos) to
// an S3-compatible bucket and hands back a public URL.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"whitekola/internal/config"
)

type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type S3 struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewS3(ctx context.Context, cfg config.S3Config) (*S3, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("empty S3 bucket")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = cfg.BaseEndpoint != ""
	})

	publicBase := strings.TrimRight(cfg.PublicBase, "/")
	if publicBase == "" {
		publicBase = strings.TrimRight(cfg.BaseEndpoint, "/") + "/" + cfg.Bucket
	}

	return &S3{client: client, bucket: cfg.Bucket, publicBase: publicBase}, nil
}

func (s *S3) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("nil blob store")
	}
	key := strings.TrimLeft(path, "/")
	if key == "" {
		return "", fmt.Errorf("empty path")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return s.publicBase + "/" + key, nil
}
