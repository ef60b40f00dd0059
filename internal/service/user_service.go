package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/cache"
	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/queue"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

// UserService 用户业务服务
type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	authService *AuthService
	queueClient *queue.Client
	emailSvc    *EmailService
	security    config.SecurityConfig
}

// NewUserService 创建用户服务
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	authService *AuthService,
	queueClient *queue.Client,
	emailSvc *EmailService,
	security config.SecurityConfig,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		authService: authService,
		queueClient: queueClient,
		emailSvc:    emailSvc,
		security:    security,
	}
}

// SignUpInput 注册输入
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SignInResult 登录结果
type SignInResult struct {
	AccessToken string
	TokenType   string
	User        *models.User
}

// SignUp 注册新用户，邮箱唯一
func (s *UserService) SignUp(input SignUpInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if len(input.Password) < 8 {
		return nil, NewValidationError("password", "password must be at least 8 characters")
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, NewInternalError(err)
	}

	user := models.User{
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         constants.RoleUser,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewDuplicateEntryError(constants.ResourceUser, "email", email)
		}
		return nil, NewInternalError(err)
	}
	logger.Infow("user_signup", "user_id", user.ID, "email", user.Email)
	return &user, nil
}

// SignIn 邮箱密码登录
// 账号不存在与密码错误返回同一错误，避免探测已注册邮箱。
func (s *UserService) SignIn(email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if user == nil || !s.authService.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}

	token, err := s.authService.GenerateToken(user.Email)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		logger.Warnw("user_touch_last_login_failed", "user_id", user.ID, "error", err)
	}
	return &SignInResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

// Get 按 ID 获取用户
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if user == nil {
		return nil, NewNotFoundError(constants.ResourceUser, id)
	}
	return user, nil
}

// GetByEmail 按邮箱获取用户，中间件加载当前用户时使用
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, NewInternalError(err)
	}
	if user == nil {
		return nil, NewNotFoundError(constants.ResourceUser, 0)
	}
	return user, nil
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return users, total, nil
}

// UpdateUserInput 更新用户输入，nil 字段保持不变
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
	Password  *string
}

// Update 更新用户
func (s *UserService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if input.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*input.Role))
		if role != constants.RoleAdmin && role != constants.RoleUser {
			return nil, NewValidationError("role", "role must be ADMIN or USER")
		}
		fields["role"] = role
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, NewValidationError("password", "password must be at least 8 characters")
		}
		hash, err := s.authService.HashPassword(*input.Password)
		if err != nil {
			return nil, NewInternalError(err)
		}
		fields["password_hash"] = hash
		fields["password_changed_at"] = time.Now()
	}

	user, err := s.userRepo.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourceUser, id)
		}
		return nil, NewInternalError(err)
	}

	// 角色或状态变化后旧鉴权快照立即失效
	if err := cache.DelUserAuthState(context.Background(), user.Email); err != nil {
		logger.Warnw("user_auth_state_invalidate_failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// Delete 删除用户及其文章与评论
// 评论在服务层显式清理，不依赖各数据库对级联外键的支持差异。
func (s *UserService) Delete(id uint) (*models.User, error) {
	posts, _, err := s.postRepo.List(repository.PostListFilter{AuthorID: id})
	if err != nil {
		return nil, NewInternalError(err)
	}
	for _, post := range posts {
		if _, err := s.postRepo.Delete(post.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewInternalError(err)
		}
	}
	if err := s.commentRepo.DeleteByUser(id); err != nil {
		return nil, NewInternalError(err)
	}

	user, err := s.userRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourceUser, id)
		}
		return nil, NewInternalError(err)
	}

	if err := cache.DelUserAuthState(context.Background(), user.Email); err != nil {
		logger.Warnw("user_auth_state_invalidate_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_deleted", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// RequestPasswordReset 发起密码重置
// 邮箱不存在时同样返回成功，避免探测已注册邮箱。
func (s *UserService) RequestPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return NewInternalError(err)
	}
	if user == nil || !user.IsActive {
		return nil
	}

	token := uuid.NewString()
	expireMinutes := s.security.ResetTokenExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 30
	}
	expiresAt := time.Now().Add(time.Duration(expireMinutes) * time.Minute)
	if _, err := s.userRepo.Update(user.ID, map[string]interface{}{
		"password_reset_token":      token,
		"password_reset_expires_at": expiresAt,
	}); err != nil {
		return NewInternalError(err)
	}

	payload := queue.PasswordResetEmailPayload{
		UserID:     user.ID,
		Email:      user.Email,
		ResetToken: token,
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueuePasswordResetEmail(payload); err != nil {
			logger.Warnw("password_reset_enqueue_failed", "user_id", user.ID, "error", err)
			return NewInternalError(err)
		}
		return nil
	}

	// 队列未启用时直接投递，邮件失败只记日志不阻塞请求
	go func() {
		if s.emailSvc == nil {
			return
		}
		if err := s.emailSvc.SendPasswordResetEmail(user.Email, user.FullName(), token); err != nil {
			logger.Warnw("password_reset_send_failed", "user_id", user.ID, "error", err)
		}
	}()
	return nil
}

// ResetPassword 使用重置令牌设置新密码
func (s *UserService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return NewValidationError("password", "password must be at least 8 characters")
	}
	user, err := s.userRepo.GetByResetToken(strings.TrimSpace(token))
	if err != nil {
		return NewInternalError(err)
	}
	if user == nil || user.PasswordResetExpiresAt == nil || time.Now().After(*user.PasswordResetExpiresAt) {
		return ErrUnauthorized
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return NewInternalError(err)
	}
	if _, err := s.userRepo.Update(user.ID, map[string]interface{}{
		"password_hash":             hash,
		"password_changed_at":       time.Now(),
		"password_reset_token":      nil,
		"password_reset_expires_at": nil,
	}); err != nil {
		return NewInternalError(err)
	}

	if err := cache.DelUserAuthState(context.Background(), user.Email); err != nil {
		logger.Warnw("user_auth_state_invalidate_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_password_reset", "user_id", user.ID)
	return nil
}
