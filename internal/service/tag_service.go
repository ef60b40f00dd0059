package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

// TagService 标签业务服务
type TagService struct {
	repo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

// List 分页获取标签列表
func (s *TagService) List(page, pageSize int) ([]models.Tag, int64, error) {
	tags, total, err := s.repo.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return tags, total, nil
}

// Get 按 ID 获取标签
func (s *TagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.repo.GetByID(id)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if tag == nil {
		return nil, NewNotFoundError(constants.ResourceTag, id)
	}
	return tag, nil
}

// Create 创建标签，名称与 slug 唯一
func (s *TagService) Create(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	tag := models.Tag{Name: name}
	if err := s.repo.Create(&tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourceTag, "name", name)
		}
		return nil, NewInternalError(err)
	}
	return &tag, nil
}

// Update 更新标签名称，slug 由模型钩子重新推导
func (s *TagService) Update(id uint, name string) (*models.Tag, error) {
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	tag.Name = name

	if err := s.repo.Save(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourceTag, "name", name)
		}
		return nil, NewInternalError(err)
	}
	return tag, nil
}

// Delete 删除标签，文章上的关联一并移除
func (s *TagService) Delete(id uint) (*models.Tag, error) {
	tag, err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourceTag, id)
		}
		return nil, NewInternalError(err)
	}
	return tag, nil
}
