package constants

// 用户角色常量
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// 实体资源名常量（错误详情与日志中使用）
const (
	ResourceUser     = "User"
	ResourcePost     = "Post"
	ResourceCategory = "Category"
	ResourceTag      = "Tag"
	ResourceComment  = "Comment"
)

// 验证码场景常量
const (
	CaptchaSceneSignup           = "signup"
	CaptchaSceneAnonymousComment = "anonymous_comment"
)

// 队列与任务常量
const (
	QueueDefault      = "default"
	TaskPasswordReset = "email:password_reset"
	TaskCommentNotice = "email:comment_notice"
)

// 请求上下文键常量
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
)
