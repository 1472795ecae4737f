package media

import (
	"context"
	"fmt"
	"time"

	"marketplace-console/pkg/metrics"
	"marketplace-console/pkg/utils"

	"go.uber.org/zap"
)

// New builds the uploader named by config.Driver: cloudinary (default), s3 or minio.
func New(ctx context.Context, config utils.MediaConfig, m *metrics.Metrics, log *zap.Logger) (Uploader, error) {
	driver := config.Driver
	if driver == "" {
		driver = "cloudinary"
	}

	var (
		u   Uploader
		err error
	)
	switch driver {
	case "cloudinary":
		u, err = NewCloudinary(CloudinaryConfig{
			APIBase:   config.CloudinaryAPI,
			CloudName: config.CloudName,
			Preset:    config.UploadPreset,
			Timeout:   config.Timeout,
		})
	case "s3":
		u, err = NewS3(ctx, S3Config{
			Region:        config.S3Region,
			Bucket:        config.S3Bucket,
			Prefix:        config.S3Prefix,
			PublicBaseURL: config.S3PublicBaseURL,
		})
	case "minio":
		u, err = NewMinio(ctx, MinioConfig{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			Bucket:    config.MinioBucket,
			Prefix:    config.S3Prefix,
			UseSSL:    config.MinioUseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER: %s", driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Media uploader ready", zap.String("driver", driver), zap.Any("target", u))
	return WithDownscale(Instrument(u, driver, m, log), config.MaxWidth), nil
}

type instrumented struct {
	next    Uploader
	driver  string
	metrics *metrics.Metrics
	log     *zap.Logger
}

// Instrument logs and counts every upload.
func Instrument(u Uploader, driver string, m *metrics.Metrics, log *zap.Logger) Uploader {
	return &instrumented{next: u, driver: driver, metrics: m, log: log.With(zap.String("component", "media"))}
}

func (i *instrumented) Upload(ctx context.Context, f File) (Asset, error) {
	start := time.Now()
	asset, err := i.next.Upload(ctx, f)
	i.metrics.Upload(i.driver, err)
	if err != nil {
		i.log.Warn("Upload failed",
			zap.String("file", f.Name),
			zap.Int("bytes", len(f.Data)),
			zap.Error(err),
		)
		return Asset{}, err
	}
	i.log.Debug("Uploaded",
		zap.String("file", f.Name),
		zap.String("public_id", asset.PublicID),
		zap.Duration("took", time.Since(start)),
	)
	return asset, nil
}
