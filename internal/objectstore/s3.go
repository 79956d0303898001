package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements Store against a real S3-compatible bucket via
// aws-sdk-go-v2. Credentials are resolved by the SDK's default chain; a
// missing/invalid credential set surfaces as a preconditional error at the
// driver boundary (spec §4.1, §7).
type S3Store struct {
	client *s3.Client
}

// NewS3Store loads the default AWS config (env vars, shared config,
// instance profile, ...) and returns a ready-to-use S3Store.
func NewS3Store(ctx context.Context) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("objectstore: loading AWS config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg)}, nil
}

func (s *S3Store) List(ctx context.Context, uri string) ([]Object, error) {
	parsed, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	if !parsed.IsPrefix() {
		return []Object{{Bucket: parsed.Bucket, Key: parsed.Key}}, nil
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(parsed.Bucket),
		Prefix: aws.String(parsed.Key),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("objectstore: listing s3://%s/%s: %w", parsed.Bucket, parsed.Key, err)
		}
		for _, item := range page.Contents {
			objects = append(objects, Object{Bucket: parsed.Bucket, Key: aws.ToString(item.Key)})
		}
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, parsed.Bucket, parsed.Key)
	}
	return objects, nil
}

func (s *S3Store) Get(ctx context.Context, obj Object) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: getting s3://%s/%s: %w", obj.Bucket, obj.Key, err)
	}
	return out.Body, nil
}

func (s *S3Store) Put(ctx context.Context, bucket, key string, body io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("objectstore: putting s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
