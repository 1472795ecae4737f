package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Media   MediaConfig
	Session SessionConfig
	Cache   CacheConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

type MediaConfig struct {
	Driver   string
	MaxWidth uint
	MaxFiles int
	Timeout  time.Duration

	// cloudinary
	CloudinaryAPI string
	CloudName     string
	UploadPreset  string

	// s3
	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string

	// minio
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type SessionConfig struct {
	Key          string
	CSRFKey      string
	CSRFEnabled  bool
	CookieSecure bool
	MaxAge       time.Duration
	PrincipalTTL time.Duration
}

type CacheConfig struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SnapshotTTL   time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// LoadConfig reads .env (optional) and the environment. An empty path means ".env".
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "marketplace-console")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BACKEND_URL", "http://localhost:5000")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("MEDIA_DRIVER", "cloudinary")
	viper.SetDefault("MEDIA_MAX_WIDTH", 1200)
	viper.SetDefault("MEDIA_MAX_FILES", 5)
	viper.SetDefault("MEDIA_TIMEOUT_SECONDS", 60)
	viper.SetDefault("CLOUDINARY_API", "https://api.cloudinary.com/v1_1")
	viper.SetDefault("S3_PREFIX", "uploads")
	viper.SetDefault("MINIO_USE_SSL", true)
	viper.SetDefault("CSRF_ENABLED", true)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("SESSION_MAX_AGE_HOURS", 12)
	viper.SetDefault("PRINCIPAL_TTL_SECONDS", 60)
	viper.SetDefault("CACHE_DRIVER", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SNAPSHOT_TTL_MINUTES", 30)
	viper.SetDefault("METRICS_ENABLED", true)

	viper.AutomaticEnv()

	// .env is optional, the environment alone is enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Backend: BackendConfig{
			URL:     strings.TrimRight(viper.GetString("BACKEND_URL"), "/"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Media: MediaConfig{
			Driver:          strings.ToLower(viper.GetString("MEDIA_DRIVER")),
			MaxWidth:        viper.GetUint("MEDIA_MAX_WIDTH"),
			MaxFiles:        viper.GetInt("MEDIA_MAX_FILES"),
			Timeout:         time.Duration(viper.GetInt("MEDIA_TIMEOUT_SECONDS")) * time.Second,
			CloudinaryAPI:   strings.TrimRight(viper.GetString("CLOUDINARY_API"), "/"),
			CloudName:       viper.GetString("CLOUD_NAME"),
			UploadPreset:    viper.GetString("UPLOAD_PRESET"),
			S3Region:        viper.GetString("S3_REGION"),
			S3Bucket:        viper.GetString("S3_BUCKET"),
			S3Prefix:        viper.GetString("S3_PREFIX"),
			S3PublicBaseURL: strings.TrimRight(viper.GetString("S3_PUBLIC_BASE_URL"), "/"),
			MinioEndpoint:   viper.GetString("MINIO_ENDPOINT"),
			MinioAccessKey:  viper.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey:  viper.GetString("MINIO_SECRET_KEY"),
			MinioBucket:     viper.GetString("MINIO_BUCKET"),
			MinioUseSSL:     viper.GetBool("MINIO_USE_SSL"),
		},
		Session: SessionConfig{
			Key:          viper.GetString("SESSION_KEY"),
			CSRFKey:      viper.GetString("CSRF_KEY"),
			CSRFEnabled:  viper.GetBool("CSRF_ENABLED"),
			CookieSecure: viper.GetBool("COOKIE_SECURE"),
			MaxAge:       time.Duration(viper.GetInt("SESSION_MAX_AGE_HOURS")) * time.Hour,
			PrincipalTTL: time.Duration(viper.GetInt("PRINCIPAL_TTL_SECONDS")) * time.Second,
		},
		Cache: CacheConfig{
			Driver:        strings.ToLower(viper.GetString("CACHE_DRIVER")),
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
			SnapshotTTL:   time.Duration(viper.GetInt("SNAPSHOT_TTL_MINUTES")) * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
		},
	}

	return config, nil
}
