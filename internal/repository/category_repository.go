package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
)

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	ListByIDs(ids []uint) ([]models.Category, error)
	GetAll(page, pageSize int) ([]models.Category, int64, error)
	Create(category *models.Category) error
	Update(id uint, fields map[string]interface{}) (*models.Category, error)
	Save(category *models.Category) error
	Delete(id uint) (*models.Category, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	Base[models.Category]
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{Base: NewBase[models.Category](db)}
}

// GetBySlug 根据 slug 获取分类，未命中返回 nil, nil
func (r *GormCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.DB().Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListByIDs 批量获取分类，保持与传入 ID 一致的存在性校验由调用方负责
func (r *GormCategoryRepository) ListByIDs(ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	var categories []models.Category
	if err := r.DB().Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save 整体保存分类，触发模型钩子
func (r *GormCategoryRepository) Save(category *models.Category) error {
	return r.DB().Save(category).Error
}

// Delete 删除分类并清理关联表，返回删除前的快照
func (r *GormCategoryRepository) Delete(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB().First(&category, id).Error; err != nil {
		return nil, err
	}
	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&category).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}
