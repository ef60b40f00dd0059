package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

// ListComments 评论列表（含未放出的）
func (h *Handler) ListComments(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	filter := repository.CommentListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("post_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.PostID = uint(id)
		}
	}
	if c.Query("only_approved") == "true" {
		filter.OnlyApproved = true
	}

	comments, total, err := h.CommentService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, comments, response.BuildPagination(page, pageSize, total))
}

// SetCommentApprovalRequest 评论审核请求
type SetCommentApprovalRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}

// SetCommentApproval 放出或隐藏评论
func (h *Handler) SetCommentApproval(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}
	var req SetCommentApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsApproved == nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	comment, err := h.CommentService.SetApproval(id, *req.IsApproved)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid comment id")
		return
	}
	if _, err := h.CommentService.Delete(id, currentUser(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deleted", gin.H{"id": id})
}
