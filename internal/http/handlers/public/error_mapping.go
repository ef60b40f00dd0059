package public

import (
	"errors"

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

var commonErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeValidation},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized},
	{target: service.ErrForbidden, code: response.CodeForbidden},
	{target: service.ErrNotFound, code: response.CodeNotFound},
	{target: service.ErrDuplicateEntry, code: response.CodeConflict},
	{target: service.ErrTooManyRequests, code: response.CodeTooManyRequests},
	{target: service.ErrStorageUnavailable, code: response.CodeInternal},
}

// respondServiceError 将业务错误映射成统一错误响应。
// 命中映射的返回原始消息与结构化详情，未命中的归为 500 且不泄漏内部错误。
func respondServiceError(c *gin.Context, err error) {
	for _, rule := range commonErrorRules {
		if errors.Is(err, rule.target) {
			response.ErrorWithDetail(c, rule.code, err.Error(), errorDetail(err))
			return
		}
	}
	logger.Errorw("handler_error", "path", c.FullPath(), "error", err)
	response.Error(c, response.CodeInternal, "internal server error")
}

// errorDetail 从类型化错误中提取结构化详情
func errorDetail(err error) interface{} {
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		detail := gin.H{"resource": notFound.Resource}
		if notFound.ResourceID > 0 {
			detail["resource_id"] = notFound.ResourceID
		}
		return detail
	}
	var duplicate *service.DuplicateEntryError
	if errors.As(err, &duplicate) {
		return gin.H{
			"resource": duplicate.Resource,
			"field":    duplicate.Field,
			"value":    duplicate.Value,
		}
	}
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return gin.H{
			"field":   validation.Field,
			"message": validation.Message,
		}
	}
	return nil
}
