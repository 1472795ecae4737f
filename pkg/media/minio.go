package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Minio struct {
	client *minio.Client
	bucket string
	prefix string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio config missing: MINIO_ENDPOINT and MINIO_BUCKET required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Minio{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *Minio) Upload(ctx context.Context, f File) (Asset, error) {
	key := objectKey(m.prefix, f)
	info, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(f.Data), int64(len(f.Data)), minio.PutObjectOptions{
		ContentType: f.DetectContentType(),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("minio put %s/%s: %w", m.bucket, key, err)
	}
	// http(s)://<endpoint>/<bucket>/<key>
	return Asset{
		URL:      fmt.Sprintf("%s/%s/%s", m.client.EndpointURL().String(), m.bucket, info.Key),
		PublicID: info.Key,
	}, nil
}

func (m *Minio) String() string { return fmt.Sprintf("minio(%s)", m.bucket) }
