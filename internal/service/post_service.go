package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

// PostService 文章业务服务
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
}

// NewPostService 创建文章服务
func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// CreatePostInput 创建文章输入
type CreatePostInput struct {
	Title         string
	Summary       string
	Body          map[string]interface{}
	FeaturedImage string
	CategoryIDs   []uint
	TagIDs        []uint
}

// UpdatePostInput 更新文章输入
// nil 字段保持不变；CategoryIDs/TagIDs 传空切片表示清空关联。
type UpdatePostInput struct {
	Title         *string
	Summary       *string
	Body          *map[string]interface{}
	FeaturedImage *string
	CategoryIDs   *[]uint
	TagIDs        *[]uint
}

// List 文章列表
func (s *PostService) List(filter repository.PostListFilter) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return posts, total, nil
}

// Get 按 ID 获取文章（含关联）
func (s *PostService) Get(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetWithRelations(id)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if post == nil {
		return nil, NewNotFoundError(constants.ResourcePost, id)
	}
	return post, nil
}

// GetBySlug 按 slug 获取文章并累加浏览计数
func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, NewInternalError(err)
	}
	if post == nil {
		return nil, &NotFoundError{Resource: constants.ResourcePost}
	}
	if err := s.postRepo.IncrementViewCount(post.ID); err != nil {
		logger.Warnw("post_view_count_bump_failed", "post_id", post.ID, "error", err)
	} else {
		post.ViewCount++
	}
	return post, nil
}

// Create 创建文章
// 分类与标签 ID 全部解析通过后才落库，任一不存在直接报未找到。
func (s *PostService) Create(author *models.User, input CreatePostInput) (*models.Post, error) {
	if author == nil {
		return nil, ErrUnauthorized
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if len(input.Body) == 0 {
		return nil, NewValidationError("body", "body is required")
	}

	categories, err := s.resolveCategories(input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(input.TagIDs)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Title:         title,
		Summary:       strings.TrimSpace(input.Summary),
		Body:          models.JSON(input.Body),
		FeaturedImage: strings.TrimSpace(input.FeaturedImage),
		AuthorID:      author.ID,
		Categories:    categories,
		Tags:          tags,
	}
	if err := s.postRepo.CreateWithRelations(&post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourcePost, "slug", models.DeriveSlug("", title))
		}
		return nil, NewInternalError(err)
	}
	logger.Infow("post_created", "post_id", post.ID, "author_id", author.ID)
	return &post, nil
}

// Update 更新文章，作者本人或管理员可操作
func (s *PostService) Update(id uint, actor *models.User, input UpdatePostInput) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(post, actor); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	slug := post.Slug
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, NewValidationError("title", "title is required")
		}
		slug = models.DeriveSlug(post.Slug, title)
		fields["title"] = title
		fields["slug"] = slug
	}
	if input.Summary != nil {
		fields["summary"] = strings.TrimSpace(*input.Summary)
	}
	if input.Body != nil {
		if len(*input.Body) == 0 {
			return nil, NewValidationError("body", "body is required")
		}
		fields["body"] = models.JSON(*input.Body)
	}
	if input.FeaturedImage != nil {
		fields["featured_image"] = strings.TrimSpace(*input.FeaturedImage)
	}

	var categories *[]models.Category
	if input.CategoryIDs != nil {
		resolved, err := s.resolveCategories(*input.CategoryIDs)
		if err != nil {
			return nil, err
		}
		categories = &resolved
	}
	var tags *[]models.Tag
	if input.TagIDs != nil {
		resolved, err := s.resolveTags(*input.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &resolved
	}

	updated, err := s.postRepo.UpdateWithRelations(id, fields, categories, tags)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourcePost, id)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourcePost, "slug", slug)
		}
		return nil, NewInternalError(err)
	}
	return updated, nil
}

// UpdateFeaturedImage 更新头图对象键
func (s *PostService) UpdateFeaturedImage(id uint, actor *models.User, objectKey string) (*models.Post, error) {
	key := strings.TrimSpace(objectKey)
	if key == "" {
		return nil, NewValidationError("object_key", "object_key is required")
	}
	return s.Update(id, actor, UpdatePostInput{FeaturedImage: &key})
}

// Delete 删除文章，作者本人或管理员可操作
func (s *PostService) Delete(id uint, actor *models.User) (*models.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(post, actor); err != nil {
		return nil, err
	}

	deleted, err := s.postRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourcePost, id)
		}
		return nil, NewInternalError(err)
	}
	logger.Infow("post_deleted", "post_id", id, "actor_id", actor.ID)
	return deleted, nil
}

func (s *PostService) checkOwnership(post *models.Post, actor *models.User) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if actor.Role == constants.RoleAdmin {
		return nil
	}
	if post.AuthorID != actor.ID {
		return ErrForbidden
	}
	return nil
}

func (s *PostService) resolveCategories(ids []uint) ([]models.Category, error) {
	unique := uniqueIDs(ids)
	categories, err := s.categoryRepo.ListByIDs(unique)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if missing, ok := firstMissingID(unique, categoryIDSet(categories)); !ok {
		return nil, NewNotFoundError(constants.ResourceCategory, missing)
	}
	return categories, nil
}

func (s *PostService) resolveTags(ids []uint) ([]models.Tag, error) {
	unique := uniqueIDs(ids)
	tags, err := s.tagRepo.ListByIDs(unique)
	if err != nil {
		return nil, NewInternalError(err)
	}
	found := make(map[uint]struct{}, len(tags))
	for _, tag := range tags {
		found[tag.ID] = struct{}{}
	}
	if missing, ok := firstMissingID(unique, found); !ok {
		return nil, NewNotFoundError(constants.ResourceTag, missing)
	}
	return tags, nil
}

func categoryIDSet(categories []models.Category) map[uint]struct{} {
	set := make(map[uint]struct{}, len(categories))
	for _, category := range categories {
		set[category.ID] = struct{}{}
	}
	return set
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// firstMissingID 返回第一个缺失的 ID，全部命中时 ok 为 true
func firstMissingID(ids []uint, found map[uint]struct{}) (uint, bool) {
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return id, false
		}
	}
	return 0, true
}
