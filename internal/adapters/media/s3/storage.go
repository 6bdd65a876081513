package s3

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vidora/vidora/internal/config"
	customErrors "github.com/vidora/vidora/internal/domain/errors"
)

const presignTTL = 15 * time.Minute

// Storage uploads media objects and mints presigned PUT URLs so large
// files go to the bucket directly instead of through the API.
type Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	publicBaseURL string
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, customErrors.WrapInternal(err, "load s3 config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// minio and friends want path-style addressing
			o.UsePathStyle = true
		}
	})

	return &Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.S3Bucket,
		publicBaseURL: cfg.S3PublicBaseURL,
	}, nil
}

// objectKey shards by date so bucket listings stay usable.
func objectKey(kind string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%v", kind, d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload streams a small object (avatars, thumbnails) through the API
// and returns its public URL.
func (s *Storage) Upload(ctx context.Context, kind, contentType string, body io.Reader) (string, error) {
	key := objectKey(kind)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", customErrors.WrapInternal(err, "Upload")
	}
	return s.publicBaseURL + "/" + key, nil
}

// PresignUpload returns the object's eventual public URL plus a short
// lived PUT URL the client uploads to.
func (s *Storage) PresignUpload(ctx context.Context, kind string) (publicURL, uploadURL string, err error) {
	key := objectKey(kind)
	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", customErrors.WrapInternal(err, "PresignUpload")
	}
	return s.publicBaseURL + "/" + key, req.URL, nil
}
