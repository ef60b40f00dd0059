package public

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/http/response"
)

// GetCaptcha 生成图片验证码
func (h *Handler) GetCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, challenge)
}

// GetCaptchaScenes 下发验证码场景开关，前端决定是否渲染验证码
func (h *Handler) GetCaptchaScenes(c *gin.Context) {
	response.Success(c, gin.H{
		constants.CaptchaSceneSignup:           h.CaptchaService.SceneEnabled(constants.CaptchaSceneSignup),
		constants.CaptchaSceneAnonymousComment: h.CaptchaService.SceneEnabled(constants.CaptchaSceneAnonymousComment),
	})
}
