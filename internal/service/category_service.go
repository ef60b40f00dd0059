package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建分类输入
type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput 更新分类输入，nil 字段保持不变
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// List 分页获取分类列表
func (s *CategoryService) List(page, pageSize int) ([]models.Category, int64, error) {
	categories, total, err := s.repo.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return categories, total, nil
}

// Get 按 ID 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if category == nil {
		return nil, NewNotFoundError(constants.ResourceCategory, id)
	}
	return category, nil
}

// Create 创建分类，名称与 slug 唯一
func (s *CategoryService) Create(input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.repo.Create(&category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourceCategory, "name", name)
		}
		return nil, NewInternalError(err)
	}
	return &category, nil
}

// Update 更新分类，名称变化时 slug 由模型钩子重新推导
func (s *CategoryService) Update(id uint, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, NewValidationError("name", "name is required")
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.repo.Save(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourceCategory, "name", category.Name)
		}
		return nil, NewInternalError(err)
	}
	return category, nil
}

// Delete 删除分类，文章上的关联一并移除
func (s *CategoryService) Delete(id uint) (*models.Category, error) {
	category, err := s.repo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourceCategory, id)
		}
		return nil, NewInternalError(err)
	}
	return category, nil
}
