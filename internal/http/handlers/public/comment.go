package public

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
	"github.com/inkwell-blog/inkwell/internal/service"
)

// ListPostComments 获取文章评论，只返回已放出的评论
func (h *Handler) ListPostComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	page, pageSize := parsePageQuery(c)

	comments, total, err := h.CommentService.ListByPost(postID, page, pageSize, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, comments, response.BuildPagination(page, pageSize, total))
}

// CreateCommentRequest 创建评论请求
// 匿名评论必须带 author_name/author_email，并在场景开启时通过验证码。
type CreateCommentRequest struct {
	AuthorName      string `json:"author_name"`
	AuthorEmail     string `json:"author_email"`
	Content         string `json:"content" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
	CaptchaID       string `json:"captcha_id"`
	CaptchaCode     string `json:"captcha_code"`
}

// CreateComment 创建评论，登录与匿名共用该接口
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	comment, err := h.CommentService.Create(currentUser(c), service.CreateCommentInput{
		PostID:          postID,
		AuthorName:      req.AuthorName,
		AuthorEmail:     req.AuthorEmail,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
		CaptchaID:       req.CaptchaID,
		CaptchaCode:     req.CaptchaCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, comment)
}

// DeleteComment 删除评论，评论作者本人可操作
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
