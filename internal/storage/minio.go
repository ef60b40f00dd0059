package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

// ObjectStore 对象存储接口，签名 URL 由存储服务直接下发给前端
type ObjectStore interface {
	PresignUpload(ctx context.Context, objectKey string) (string, error)
	PresignDownload(ctx context.Context, objectKey string) (string, error)
	Remove(ctx context.Context, objectKey string) error
}

// MinioStore MinIO 实现
type MinioStore struct {
	client         *minio.Client
	bucket         string
	uploadExpire   time.Duration
	downloadExpire time.Duration
}

// NewMinioStore 创建 MinIO 存储并确保桶存在
func NewMinioStore(cfg *config.StorageConfig) (*MinioStore, error) {
	if cfg == nil || strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("storage endpoint is empty")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	uploadExpire := time.Duration(cfg.UploadExpireMinutes) * time.Minute
	if uploadExpire <= 0 {
		uploadExpire = time.Hour
	}
	downloadExpire := time.Duration(cfg.DownloadExpireMinutes) * time.Minute
	if downloadExpire <= 0 {
		downloadExpire = time.Hour
	}
	store := &MinioStore{
		client:         client,
		bucket:         cfg.Bucket,
		uploadExpire:   uploadExpire,
		downloadExpire: downloadExpire,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.Infow("storage_bucket_created", "bucket", cfg.Bucket)
	}
	return store, nil
}

// PresignUpload 生成上传签名 URL
func (s *MinioStore) PresignUpload(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", errors.New("object key is empty")
	}
	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, s.uploadExpire)
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

// PresignDownload 生成下载签名 URL
func (s *MinioStore) PresignDownload(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", errors.New("object key is empty")
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, s.downloadExpire, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}

// Remove 删除对象
func (s *MinioStore) Remove(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return errors.New("object key is empty")
	}
	return s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
