package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Options struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	LinkExpiry      time.Duration
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type s3Store struct {
	objects   objectPutter
	presigner objectPresigner
	bucket    string
	prefix    string
	expiry    time.Duration
}

// NewS3Store builds an S3 compatible store. A custom endpoint (R2, MinIO)
// switches to path-style addressing.
func NewS3Store(ctx context.Context, opts S3Options) (RemoteStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Store(client, s3.NewPresignClient(client), opts), nil
}

func newS3Store(objects objectPutter, presigner objectPresigner, opts S3Options) *s3Store {
	expiry := opts.LinkExpiry
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &s3Store{
		objects:   objects,
		presigner: presigner,
		bucket:    opts.Bucket,
		prefix:    strings.Trim(opts.Prefix, "/"),
		expiry:    expiry,
	}
}

func (s *s3Store) Name() string {
	return "s3"
}

func (s *s3Store) key(parts ...string) string {
	segments := splitFolderPath(s.prefix)
	for _, p := range parts {
		segments = append(segments, splitFolderPath(p)...)
	}
	return strings.Join(segments, "/")
}

// EnsureFolder writes an empty marker object so the folder shows in bucket
// browsers.
func (s *s3Store) EnsureFolder(ctx context.Context, folderPath string) (string, error) {
	key := s.key(folderPath) + "/"
	_, err := s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", key, err)
	}
	return key, nil
}

func (s *s3Store) Upload(ctx context.Context, folderPath, name, mimeType string, content []byte) (*RemoteFile, error) {
	key := s.key(folderPath, name)
	_, err := s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return &RemoteFile{
		ID:   key,
		Name: name,
		Path: key,
		URL:  fmt.Sprintf("s3://%s/%s", s.bucket, key),
	}, nil
}

// ShareLink returns a presigned GET url valid for the configured expiry.
func (s *s3Store) ShareLink(ctx context.Context, file RemoteFile) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(file.ID),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", file.Name, err)
	}
	return req.URL, nil
}
