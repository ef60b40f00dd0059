package public

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
	"github.com/inkwell-blog/inkwell/internal/repository"
	"github.com/inkwell-blog/inkwell/internal/service"
)

// ListPosts 文章列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	filter := repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("tag_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.TagID = uint(id)
		}
	}
	if raw := c.Query("author_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.AuthorID = uint(id)
		}
	}

	posts, total, err := h.PostService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, posts, response.BuildPagination(page, pageSize, total))
}

// GetPostBySlug 按 slug 获取文章，访问即累加浏览计数
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.PostService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// GetPost 按 ID 获取文章
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	post, err := h.PostService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Title         string                 `json:"title" binding:"required"`
	Summary       string                 `json:"summary"`
	Body          map[string]interface{} `json:"body" binding:"required"`
	FeaturedImage string                 `json:"featured_image"`
	CategoryIDs   []uint                 `json:"category_ids"`
	TagIDs        []uint                 `json:"tag_ids"`
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.PostService.Create(currentUser(c), service.CreatePostInput{
		Title:         req.Title,
		Summary:       req.Summary,
		Body:          req.Body,
		FeaturedImage: req.FeaturedImage,
		CategoryIDs:   req.CategoryIDs,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePostRequest 更新文章请求
// 缺省字段保持不变；category_ids/tag_ids 传空数组表示清空关联。
type UpdatePostRequest struct {
	Title         *string                 `json:"title"`
	Summary       *string                 `json:"summary"`
	Body          *map[string]interface{} `json:"body"`
	FeaturedImage *string                 `json:"featured_image"`
	CategoryIDs   *[]uint                 `json:"category_ids"`
	TagIDs        *[]uint                 `json:"tag_ids"`
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.PostService.Update(id, currentUser(c), service.UpdatePostInput{
		Title:         req.Title,
		Summary:       req.Summary,
		Body:          req.Body,
		FeaturedImage: req.FeaturedImage,
		CategoryIDs:   req.CategoryIDs,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdateFeaturedImageRequest 更新头图请求
type UpdateFeaturedImageRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
}

// UpdateFeaturedImage 文件直传完成后回写头图对象键
func (h *Handler) UpdateFeaturedImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req UpdateFeaturedImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.PostService.UpdateFeaturedImage(id, currentUser(c), req.ObjectKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	if _, err := h.PostService.Delete(id, currentUser(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deleted", gin.H{"id": id})
}
