package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/omidvesal/intake_backend/config"
)

// s3Store keeps blobs in a bucket under resumes/<id>, carrying the stored
// name as object metadata.
type s3Store struct {
	s3     *s3.Client
	bucket string
}

// NewS3Store returns a Store over an S3-compatible bucket.
func NewS3Store(cfg config.S3Config) (Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob: s3 bucket name is required")
	}

	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...any) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				SigningRegion:     cfg.Region,
				HostnameImmutable: true,
			}, nil
		},
	)

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awscfg.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("blob: s3 config: %w", err)
	}

	cli := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true // MinIO and ArvanCloud-style endpoints need path-style
	})

	return &s3Store{s3: cli, bucket: cfg.Bucket}, nil
}

func (s *s3Store) key(id uuid.UUID) string {
	return "resumes/" + id.String()
}

func (s *s3Store) Put(ctx context.Context, name, contentType string, r io.Reader) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	// Uploads are capped by the ingestion boundary, so buffering the body
	// for a length-signed PutObject is fine here.
	data, err := io.ReadAll(r)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(id)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPrivate,
		Metadata:      map[string]string{"original-name": name},
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return id, nil
}

func (s *s3Store) Get(ctx context.Context, id uuid.UUID) (*Info, io.ReadCloser, error) {
	out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("blob: s3 get %s: %w", id, err)
	}

	info := &Info{
		ID:          id,
		Name:        out.Metadata["original-name"],
		ContentType: aws.ToString(out.ContentType),
	}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	if out.LastModified != nil {
		info.CreatedAt = *out.LastModified
	}

	return info, out.Body, nil
}
