package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leaguerats/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Resolver turns an object key into a downloadable URL.
type Resolver interface {
	URL(ctx context.Context, path string) (string, error)
}

// ObjectHeader checks object existence.
type ObjectHeader interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Presigner signs temporary download URLs.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3ResolverDeps struct {
	Client     ObjectHeader
	Presigner  Presigner
	Bucket     string
	PublicURL  string
	PresignTTL time.Duration
}

// S3Resolver resolves keys of the asset bucket.
// A configured public URL is preferred over presigning.
type S3Resolver struct {
	client     ObjectHeader
	presigner  Presigner
	bucket     string
	publicURL  string
	presignTTL time.Duration
}

// Create the resolver.
func NewS3Resolver(deps *S3ResolverDeps) *S3Resolver {
	ttl := deps.PresignTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &S3Resolver{
		client:     deps.Client,
		presigner:  deps.Presigner,
		bucket:     deps.Bucket,
		publicURL:  strings.TrimRight(deps.PublicURL, "/"),
		presignTTL: ttl,
	}
}

// Create the resolver straight from a S3 client.
func NewS3ResolverFromClient(client *s3.Client, bucket, publicURL string, ttl time.Duration) *S3Resolver {
	return NewS3Resolver(&S3ResolverDeps{
		Client:     client,
		Presigner:  s3.NewPresignClient(client),
		Bucket:     bucket,
		PublicURL:  publicURL,
		PresignTTL: ttl,
	})
}

// URL confirms the object exists and returns its download URL.
func (r *S3Resolver) URL(ctx context.Context, path string) (string, error) {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "", fmt.Errorf("%w: empty asset path", errs.ErrInvalidInput)
	}

	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("asset %s: %w", path, errs.ErrNotFound)
		}
		return "", fmt.Errorf("asset %s: %w: %v", path, errs.ErrTransport, err)
	}

	if r.publicURL != "" {
		return r.publicURL + "/" + path, nil
	}

	if r.presigner == nil {
		return "", fmt.Errorf("%w: no public url nor presigner configured", errs.ErrInvalidInput)
	}

	request, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(r.presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w: %v", path, errs.ErrTransport, err)
	}

	return request.URL, nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// StaticResolver joins keys to a base URL without checking existence.
type StaticResolver struct {
	BaseURL string
}

func (r StaticResolver) URL(_ context.Context, path string) (string, error) {
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "", fmt.Errorf("%w: empty asset path", errs.ErrInvalidInput)
	}
	if r.BaseURL == "" {
		return "", fmt.Errorf("asset %s: %w", path, errs.ErrNotFound)
	}
	return strings.TrimRight(r.BaseURL, "/") + "/" + path, nil
}
