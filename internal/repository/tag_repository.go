package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	GetByID(id uint) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	ListByIDs(ids []uint) ([]models.Tag, error)
	GetAll(page, pageSize int) ([]models.Tag, int64, error)
	Create(tag *models.Tag) error
	Update(id uint, fields map[string]interface{}) (*models.Tag, error)
	Save(tag *models.Tag) error
	Delete(id uint) (*models.Tag, error)
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	Base[models.Tag]
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{Base: NewBase[models.Tag](db)}
}

// GetBySlug 根据 slug 获取标签，未命中返回 nil, nil
func (r *GormTagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB().Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// ListByIDs 批量获取标签
func (r *GormTagRepository) ListByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.DB().Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Save 整体保存标签，触发模型钩子
func (r *GormTagRepository) Save(tag *models.Tag) error {
	return r.DB().Save(tag).Error
}

// Delete 删除标签并清理关联表，返回删除前的快照
func (r *GormTagRepository) Delete(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB().First(&tag, id).Error; err != nil {
		return nil, err
	}
	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
