package client

import (
	"context"
	"fmt"
	"io"
	"time"

	appconfig "sharyat/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageClient stores bull and owner photos in an S3-compatible bucket. A
// custom endpoint allows pointing at MinIO in development.
type StorageClient struct {
	s3Client  *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func NewStorageClient(ctx context.Context) (*StorageClient, error) {
	cfg := appconfig.Env()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.StorageRegion))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.StorageEndpoint != "" {
			options.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			options.UsePathStyle = true
		}
	})
	return &StorageClient{
		s3Client:  s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    cfg.StorageBucket,
	}, nil
}

func (c *StorageClient) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	return err
}

// PresignGet returns a time-limited download URL for a stored object.
func (c *StorageClient) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	request, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return request.URL, nil
}

func (c *StorageClient) Delete(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}
