package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	GetWithRelations(id uint) (*models.Post, error)
	CreateWithRelations(post *models.Post) error
	UpdateWithRelations(id uint, fields map[string]interface{}, categories *[]models.Category, tags *[]models.Tag) (*models.Post, error)
	Delete(id uint) (*models.Post, error)
	List(filter PostListFilter) ([]models.Post, int64, error)
	IncrementViewCount(id uint) error
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	Base[models.Post]
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{Base: NewBase[models.Post](db)}
}

// GetBySlug 根据 slug 获取文章（含关联），未命中返回 nil, nil
func (r *GormPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.DB().Preload("Author").Preload("Categories").Preload("Tags").
		Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetWithRelations 按主键获取文章并预加载关联，未命中返回 nil, nil
func (r *GormPostRepository) GetWithRelations(id uint) (*models.Post, error) {
	var post models.Post
	err := r.DB().Preload("Author").Preload("Categories").Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// CreateWithRelations 创建文章，关联表一并写入
func (r *GormPostRepository) CreateWithRelations(post *models.Post) error {
	if err := r.DB().Create(post).Error; err != nil {
		return err
	}
	reloaded, err := r.GetWithRelations(post.ID)
	if err != nil {
		return err
	}
	if reloaded != nil {
		*post = *reloaded
	}
	return nil
}

// UpdateWithRelations 部分更新文章字段并按需整体替换多对多关联。
// categories/tags 传 nil 表示保持不变，传空切片表示清空。
// 未命中返回 gorm.ErrRecordNotFound。
func (r *GormPostRepository) UpdateWithRelations(id uint, fields map[string]interface{}, categories *[]models.Category, tags *[]models.Tag) (*models.Post, error) {
	var post models.Post
	if err := r.DB().First(&post, id).Error; err != nil {
		return nil, err
	}

	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&post).Updates(fields).Error; err != nil {
				return err
			}
		}
		if categories != nil {
			if err := tx.Model(&post).Association("Categories").Replace(toAssociationValues(*categories)...); err != nil {
				return err
			}
		}
		if tags != nil {
			if err := tx.Model(&post).Association("Tags").Replace(toAssociationValues(*tags)...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetWithRelations(id)
}

// Delete 删除文章并清理关联表，返回删除前的快照
func (r *GormPostRepository) Delete(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB().First(&post, id).Error; err != nil {
		return nil, err
	}

	err := r.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List 文章列表（含关联）
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	query := r.DB().Model(&models.Post{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", like, like)
	}
	if filter.AuthorID > 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID > 0 {
		query = query.Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Where("post_categories.category_id = ?", filter.CategoryID)
	}
	if filter.TagID > 0 {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", filter.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var posts []models.Post
	err := query.Preload("Author").Preload("Categories").Preload("Tags").
		Order(orderBy).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// IncrementViewCount 浏览计数自增，数据库侧原子更新
func (r *GormPostRepository) IncrementViewCount(id uint) error {
	return r.DB().Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// toAssociationValues 展开切片给 Association.Replace 使用
func toAssociationValues[T any](entities []T) []interface{} {
	values := make([]interface{}, 0, len(entities))
	for i := range entities {
		values = append(values, &entities[i])
	}
	return values
}
