package public

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
)

// CreateUploadURLRequest 上传签名请求
type CreateUploadURLRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// CreateUploadURL 下发上传签名 URL，前端拿到后直传对象存储
func (h *Handler) CreateUploadURL(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}
	var req CreateUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	presigned, err := h.FileService.CreateUploadURL(c.Request.Context(), userID, req.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, presigned)
}

// CreateDownloadURL 下发下载签名 URL
func (h *Handler) CreateDownloadURL(c *gin.Context) {
	objectKey := c.Query("object_key")
	presigned, err := h.FileService.CreateDownloadURL(c.Request.Context(), objectKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, presigned)
}
