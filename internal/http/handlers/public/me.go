package public

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
	"github.com/inkwell-blog/inkwell/internal/service"
)

// GetMe 获取当前登录用户
func (h *Handler) GetMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	response.Success(c, user)
}

// UpdateMeRequest 更新个人资料请求，缺省字段保持不变
type UpdateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

// UpdateMe 更新当前登录用户资料
func (h *Handler) UpdateMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.UserService.Update(user.ID, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, updated)
}
