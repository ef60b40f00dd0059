package public

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
)

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	categories, total, err := h.CategoryService.List(page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, categories, response.BuildPagination(page, pageSize, total))
}

// GetCategory 按 ID 获取分类
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid category id")
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, category)
}

// ListTags 标签列表
func (h *Handler) ListTags(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	tags, total, err := h.TagService.List(page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, tags, response.BuildPagination(page, pageSize, total))
}

// GetTag 按 ID 获取标签
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid tag id")
		return
	}
	tag, err := h.TagService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, tag)
}
