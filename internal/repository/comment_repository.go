package repository

import (
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	GetByID(id uint) (*models.Comment, error)
	Create(comment *models.Comment) error
	Update(id uint, fields map[string]interface{}) (*models.Comment, error)
	Delete(id uint) (*models.Comment, error)
	DeleteByUser(userID uint) error
	List(filter CommentListFilter) ([]models.Comment, int64, error)
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	Base[models.Comment]
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{Base: NewBase[models.Comment](db)}
}

// DeleteByUser 删除某用户名下的全部评论
// 用户注销时调用，不依赖数据库层面的级联配置。
func (r *GormCommentRepository) DeleteByUser(userID uint) error {
	if userID == 0 {
		return nil
	}
	return r.DB().Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}

// List 评论列表，公开接口只取已放出的评论
func (r *GormCommentRepository) List(filter CommentListFilter) ([]models.Comment, int64, error) {
	query := r.DB().Model(&models.Comment{})

	if filter.PostID > 0 {
		query = query.Where("post_id = ?", filter.PostID)
	}
	if filter.OnlyApproved {
		query = query.Where("is_approved = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var comments []models.Comment
	if err := query.Order("id DESC").Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
