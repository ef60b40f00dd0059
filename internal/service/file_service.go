package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/storage"
)

// 允许上传的文件后缀
var allowedUploadExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".svg":  {},
	".pdf":  {},
}

// PresignedUpload 上传签名结果
type PresignedUpload struct {
	ObjectKey string `json:"object_key"`
	UploadURL string `json:"upload_url"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignedDownload 下载签名结果
type PresignedDownload struct {
	ObjectKey   string `json:"object_key"`
	DownloadURL string `json:"download_url"`
	ExpiresIn   int    `json:"expires_in"`
}

// FileService 文件业务服务
// 前端直传对象存储，后端只负责下发签名 URL。
type FileService struct {
	store storage.ObjectStore
	cfg   config.StorageConfig
}

// NewFileService 创建文件服务
func NewFileService(store storage.ObjectStore, cfg config.StorageConfig) *FileService {
	return &FileService{store: store, cfg: cfg}
}

// CreateUploadURL 生成上传签名
// 对象键用 uuid 前缀避免覆盖同名文件。
func (s *FileService) CreateUploadURL(ctx context.Context, userID uint, filename string) (*PresignedUpload, error) {
	filename = path.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, NewValidationError("filename", "filename is required")
	}
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedUploadExtensions[ext]; !ok {
		return nil, NewValidationError("filename", fmt.Sprintf("file type %q is not allowed", ext))
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	objectKey := fmt.Sprintf("uploads/%d/%s-%s", userID, uuid.NewString(), sanitizeFilename(filename))
	uploadURL, err := s.store.PresignUpload(ctx, objectKey)
	if err != nil {
		logger.Warnw("file_presign_upload_failed", "object_key", objectKey, "error", err)
		return nil, NewInternalError(err)
	}
	return &PresignedUpload{
		ObjectKey: objectKey,
		UploadURL: uploadURL,
		ExpiresIn: s.expireSeconds(s.cfg.UploadExpireMinutes),
	}, nil
}

// CreateDownloadURL 生成下载签名
func (s *FileService) CreateDownloadURL(ctx context.Context, objectKey string) (*PresignedDownload, error) {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil, NewValidationError("object_key", "object_key is required")
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	downloadURL, err := s.store.PresignDownload(ctx, objectKey)
	if err != nil {
		logger.Warnw("file_presign_download_failed", "object_key", objectKey, "error", err)
		return nil, NewInternalError(err)
	}
	return &PresignedDownload{
		ObjectKey:   objectKey,
		DownloadURL: downloadURL,
		ExpiresIn:   s.expireSeconds(s.cfg.DownloadExpireMinutes),
	}, nil
}

// Delete 删除对象
func (s *FileService) Delete(ctx context.Context, objectKey string) error {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return NewValidationError("object_key", "object_key is required")
	}
	if s.store == nil {
		return ErrStorageUnavailable
	}
	if err := s.store.Remove(ctx, objectKey); err != nil {
		logger.Warnw("file_remove_failed", "object_key", objectKey, "error", err)
		return NewInternalError(err)
	}
	logger.Infow("file_removed", "object_key", objectKey)
	return nil
}

func (s *FileService) expireSeconds(minutes int) int {
	if minutes <= 0 {
		return int(time.Hour / time.Second)
	}
	return minutes * 60
}

// sanitizeFilename 清理文件名中的路径分隔符与空白
func sanitizeFilename(filename string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_")
	return replacer.Replace(filename)
}
