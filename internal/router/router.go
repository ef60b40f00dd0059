package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell-blog/inkwell/internal/cache"
	"github.com/inkwell-blog/inkwell/internal/config"
	adminhandlers "github.com/inkwell-blog/inkwell/internal/http/handlers/admin"
	publichandlers "github.com/inkwell-blog/inkwell/internal/http/handlers/public"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ink"
	}
	redisClient := cache.Client()
	signinRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:signin", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	forgotRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:forgot_password", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", publicHandler.Signup)
			auth.POST("/signin", RateLimitMiddleware(redisClient, signinRule, KeyByIPAndJSONField("email")), publicHandler.Signin)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, forgotRule, KeyByIP), publicHandler.ForgotPassword)
			auth.POST("/reset-password", publicHandler.ResetPassword)
		}

		// 验证码
		apiV1.GET("/captcha/image", publicHandler.GetCaptcha)
		apiV1.GET("/captcha/scenes", publicHandler.GetCaptchaScenes)

		// 公开内容接口
		apiV1.GET("/posts", publicHandler.ListPosts)
		apiV1.GET("/posts/slug/:slug", publicHandler.GetPostBySlug)
		apiV1.GET("/posts/:id", publicHandler.GetPost)
		apiV1.GET("/posts/:id/comments", publicHandler.ListPostComments)
		apiV1.POST("/posts/:id/comments",
			OptionalJWTAuthMiddleware(c.AuthService, c.UserService),
			publicHandler.CreateComment,
		)
		apiV1.GET("/categories", publicHandler.ListCategories)
		apiV1.GET("/categories/:id", publicHandler.GetCategory)
		apiV1.GET("/tags", publicHandler.ListTags)
		apiV1.GET("/tags/:id", publicHandler.GetTag)

		// 登录用户接口（JWT + RBAC）
		authed := apiV1.Group("")
		authed.Use(
			JWTAuthMiddleware(c.AuthService, c.UserService),
			RoleAuthMiddleware(c.AuthzService),
		)
		{
			authed.GET("/me", publicHandler.GetMe)
			authed.PATCH("/me", publicHandler.UpdateMe)

			authed.POST("/posts", publicHandler.CreatePost)
			authed.PATCH("/posts/:id", publicHandler.UpdatePost)
			authed.DELETE("/posts/:id", publicHandler.DeletePost)
			authed.PATCH("/posts/:id/featured-image", publicHandler.UpdateFeaturedImage)

			authed.DELETE("/comments/:id", publicHandler.DeleteComment)

			authed.POST("/files/upload-url", publicHandler.CreateUploadURL)
			authed.GET("/files/download-url", publicHandler.CreateDownloadURL)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(
			JWTAuthMiddleware(c.AuthService, c.UserService),
			RoleAuthMiddleware(c.AuthzService),
		)
		{
			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PATCH("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			// 分类与标签管理
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PATCH("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
			admin.POST("/tags", adminHandler.CreateTag)
			admin.PATCH("/tags/:id", adminHandler.UpdateTag)
			admin.DELETE("/tags/:id", adminHandler.DeleteTag)

			// 评论管理
			admin.GET("/comments", adminHandler.ListComments)
			admin.PATCH("/comments/:id/approval", adminHandler.SetCommentApproval)
			admin.DELETE("/comments/:id", adminHandler.DeleteComment)

			// 对象存储管理
			admin.DELETE("/files", adminHandler.DeleteFile)
		}
	}

	// 健康检查与指标
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
