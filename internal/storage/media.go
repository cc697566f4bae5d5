// Package storage relays uploaded files to an S3-compatible media host and
// hands back public URLs for embedding in blog content.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/iliyamo/soulful-cms/internal/config"
)

// MediaStore uploads files into a fixed folder of the configured bucket.
type MediaStore struct {
	client  *s3.Client
	bucket  string
	folder  string
	baseURL string
}

// NewMediaStore builds the S3 client from config. A custom endpoint (MinIO
// and friends) is honored when set; otherwise the AWS default resolver is
// used. The public base URL defaults to the bucket's virtual-hosted address.
func NewMediaStore(ctx context.Context, cfg config.Config) (*MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "")))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.MediaBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &MediaStore{
		client:  client,
		bucket:  cfg.S3Bucket,
		folder:  cfg.MediaFolder,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload streams one file to the media host and returns its public URL. The
// original extension is kept for content negotiation; the key itself is a
// fresh UUID so names can never collide.
func (m *MediaStore) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := m.folder + "/" + uuid.NewString() + strings.ToLower(path.Ext(name))
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return m.baseURL + "/" + key, nil
}

// ClassifyResourceType maps a declared media type onto the coarse
// image/video/raw taxonomy used by the upload API.
func ClassifyResourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image"):
		return "image"
	case strings.HasPrefix(contentType, "video"):
		return "video"
	default:
		return "raw"
	}
}
