package imagecache

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

var (
	loadAWSConfig = config.LoadDefaultConfig
	newS3Client   = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type getObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Fetcher loads s3://bucket/key images from an S3-compatible store.
type S3Fetcher struct {
	api getObjectAPI
}

// NewS3Fetcher builds a client for opts. A non-empty Endpoint selects a
// custom store (MinIO and the like) with path-style addressing; static
// credentials are used when both keys are set.
func NewS3Fetcher(ctx context.Context, opts S3Options) (*S3Fetcher, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3Client(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Fetcher{api: client}, nil
}

func (f *S3Fetcher) Load(ctx context.Context, url string) (*Image, error) {
	bucket, key, err := splitS3URL(url)
	if err != nil {
		return nil, err
	}

	out, err := f.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	data, err := readAll(out.Body)
	if err != nil {
		return nil, err
	}
	return Decode(url, data)
}

func splitS3URL(url string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(url, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 url: %q", url)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 url needs bucket and key: %q", url)
	}
	return bucket, key, nil
}

// SchemeLoader sends s3:// URLs to S3 and the rest to Fallback. S3 may be
// nil, in which case s3:// URLs fail.
type SchemeLoader struct {
	S3       Loader
	Fallback Loader
}

func (l *SchemeLoader) Load(ctx context.Context, url string) (*Image, error) {
	if strings.HasPrefix(url, s3Scheme) {
		if l.S3 == nil {
			return nil, fmt.Errorf("no s3 store configured for %q", url)
		}
		return l.S3.Load(ctx, url)
	}
	return l.Fallback.Load(ctx, url)
}
