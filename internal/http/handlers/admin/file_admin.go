package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
)

// DeleteFileRequest 删除对象请求
type DeleteFileRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
}

// DeleteFile 从对象存储中删除文件
func (h *Handler) DeleteFile(c *gin.Context) {
	var req DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.FileService.Delete(c.Request.Context(), req.ObjectKey); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "deleted", gin.H{"object_key": req.ObjectKey})
}
