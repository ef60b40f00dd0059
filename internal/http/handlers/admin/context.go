package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/models"
)

// currentUser 从上下文取出鉴权中间件加载的用户
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
