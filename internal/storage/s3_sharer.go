// Package storage issues download links for upload objects kept in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/terraincognita07/baseapp/internal/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

var ErrEmptyStorageKey = errors.New("storage key is empty")

// S3Sharer presigns GET requests against one bucket.
type S3Sharer struct {
	cfg appconfig.S3Config
}

func NewS3Sharer(cfg appconfig.S3Config) *S3Sharer {
	return &S3Sharer{cfg: cfg}
}

func (sharer *S3Sharer) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	options := []func(*config.LoadOptions) error{config.WithRegion(sharer.cfg.Region)}
	if sharer.cfg.AccessKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sharer.cfg.AccessKey, sharer.cfg.SecretKey, ""),
		))
	}

	awsConfig, err := loadDefaultAWSConfig(ctx, options...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(sharer.cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3PresignClient(client), nil
}

// PresignGet returns a URL that downloads key for ttl.
func (sharer *S3Sharer) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyStorageKey
	}

	client, err := sharer.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := sharer.cfg.Bucket
	request, err := presignGetObject(client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return request.URL, nil
}
