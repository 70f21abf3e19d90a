package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	apperrors "entity-tracker-backend/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config selects a bucket on AWS S3 or an S3-compatible server
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty for AWS; set for MinIO and friends
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	MaxBytes        int64
}

// s3API is the subset of *s3.Client the store uses
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps blobs as objects in one bucket
type S3Store struct {
	client   s3API
	bucket   string
	prefix   string
	maxBytes int64
}

// NewS3Store builds an S3 client from cfg
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, apperrors.NewConfigurationError("S3_BUCKET must be set for the s3 storage backend")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, apperrors.NewStorageError("init", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, cfg), nil
}

func newS3Store(client s3API, cfg S3Config) *S3Store {
	return &S3Store{
		client:   client,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		maxBytes: limitOrDefault(cfg.MaxBytes),
	}
}

func (s *S3Store) key(locator string) string {
	if s.prefix == "" {
		return locator
	}
	return path.Join(s.prefix, locator)
}

// Store buffers content up to the size ceiling and uploads it in one request
func (s *S3Store) Store(ctx context.Context, content io.Reader, originalFilename string) (string, int64, error) {
	locator, err := newLocator(originalFilename)
	if err != nil {
		return "", 0, err
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return "", 0, apperrors.NewStorageError("store", err)
	}
	size := int64(len(data))
	if size > s.maxBytes {
		return "", 0, &apperrors.TooLargeError{Limit: s.maxBytes}
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(locator)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", 0, apperrors.NewStorageError("store", err)
	}
	return locator, size, nil
}

// Open streams the object body
func (s *S3Store) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if err := checkLocator(locator); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(locator)),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, apperrors.ErrBlobNotFound
		}
		return nil, apperrors.NewStorageError("open", err)
	}
	return out.Body, nil
}

// Delete removes the object; S3 treats a missing key as success
func (s *S3Store) Delete(ctx context.Context, locator string) error {
	if err := checkLocator(locator); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(locator)),
	})
	if err != nil && !isMissingObject(err) {
		return apperrors.NewStorageError("delete", err)
	}
	return nil
}

func isMissingObject(err error) bool {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
