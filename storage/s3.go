package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"research-atlas/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore ist der kleinste gemeinsame Nenner für Workbook und Snapshots.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	URL(key string) string
}

// Lister wird für die Rotation alter Snapshots gebraucht.
type Lister interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Endpoint.
func NewS3Client(cfg *config.Config) (*s3.Client, error) {
	if !cfg.HasS3() {
		return nil, fmt.Errorf("s3 ist nicht konfiguriert (S3_URL, S3_BUCKET, S3_KEY, S3_SECRET)")
	}
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.S3URL,
				SigningRegion:     cfg.S3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Bucket bindet einen S3-Client an einen Bucket.
type Bucket struct {
	client  *s3.Client
	name    string
	baseURL string
}

// NewBucket erstellt den Client und bindet ihn an S3_BUCKET.
func NewBucket(cfg *config.Config) (*Bucket, error) {
	client, err := NewS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &Bucket{client: client, name: cfg.S3Bucket, baseURL: cfg.S3URL}, nil
}

// Get lädt ein Objekt vollständig herunter.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", b.name, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Put lädt eine Datei ins S3 hoch.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", b.name, key, err)
	}
	return nil
}

// URL gibt den Link auf ein Objekt zurück.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.baseURL, b.name, key)
}

// List gibt alle Keys unter prefix zurück (paginiert).
func (b *Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", b.name, prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// Delete löscht ein Objekt.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	return err
}
