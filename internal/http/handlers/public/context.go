package public

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/models"
)

// currentUser 从上下文取出鉴权中间件加载的用户，可选登录的接口返回 nil
func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get("current_user")
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func getUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePageQuery 解析分页参数
func parsePageQuery(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
