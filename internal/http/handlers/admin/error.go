package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/http/response"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/service"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
}

var adminErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeValidation},
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized},
	{target: service.ErrForbidden, code: response.CodeForbidden},
	{target: service.ErrNotFound, code: response.CodeNotFound},
	{target: service.ErrDuplicateEntry, code: response.CodeConflict},
	{target: service.ErrStorageUnavailable, code: response.CodeInternal},
}

func respondServiceError(c *gin.Context, err error) {
	for _, rule := range adminErrorRules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.code, err.Error())
			return
		}
	}
	logger.Errorw("admin_handler_error", "path", c.FullPath(), "error", err)
	response.Error(c, response.CodeInternal, "internal server error")
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
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
