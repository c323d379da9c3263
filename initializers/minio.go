package initializers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
)

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	MaxSize   int64
	FileTypes []string
	Expiry    time.Duration
}

var MinioClient *minio.Client
var Storage StorageConfig

// uploadsConfigYAML is the optional on-disk config for upload limits. When
// the file exists it overrides the environment variables.
type uploadsConfigYAML struct {
	MaxFileSize        int64    `yaml:"max_file_size"`
	AllowedFileTypes   []string `yaml:"allowed_file_types"`
	PresignedURLExpiry int      `yaml:"presigned_url_expiry"` // seconds
}

func loadUploadsConfig() (*uploadsConfigYAML, error) {
	path := os.Getenv("UPLOADS_CONFIG_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/uploads.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg uploadsConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitStorage connects to the object store and ensures the bucket exists.
// Uploaded file content lives here; the database keeps only metadata and the
// object key.
func InitStorage() error {
	Storage = StorageConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    os.Getenv("MINIO_BUCKET"),
		UseSSL:    strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true"),
		MaxSize:   50 << 20,
		Expiry:    15 * time.Minute,
	}
	if Storage.Bucket == "" {
		Storage.Bucket = "prosjektravn-files"
	}
	if v, err := strconv.ParseInt(os.Getenv("MAX_FILE_SIZE"), 10, 64); err == nil && v > 0 {
		Storage.MaxSize = v
	}
	if cfg, err := loadUploadsConfig(); err == nil {
		if cfg.MaxFileSize > 0 {
			Storage.MaxSize = cfg.MaxFileSize
		}
		if len(cfg.AllowedFileTypes) > 0 {
			Storage.FileTypes = cfg.AllowedFileTypes
		}
		if cfg.PresignedURLExpiry > 0 {
			Storage.Expiry = time.Duration(cfg.PresignedURLExpiry) * time.Second
		}
	}

	if Storage.Endpoint == "" {
		return fmt.Errorf("MINIO_ENDPOINT is not set")
	}

	client, err := minio.New(Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(Storage.AccessKey, Storage.SecretKey, ""),
		Secure: Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, Storage.Bucket)
	if err != nil {
		return fmt.Errorf("bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, Storage.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("make bucket: %w", err)
		}
	}

	MinioClient = client
	return nil
}

// TypeAllowed reports whether a sniffed MIME type passes the allowlist.
// An empty allowlist permits everything.
func (s StorageConfig) TypeAllowed(mimeType string) bool {
	if len(s.FileTypes) == 0 {
		return true
	}
	for _, t := range s.FileTypes {
		if strings.EqualFold(t, mimeType) {
			return true
		}
	}
	return false
}
