package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/inkwell-blog/inkwell/internal/constants"
)

const (
	// TaskPasswordResetEmail 密码重置邮件任务
	TaskPasswordResetEmail = constants.TaskPasswordReset
	// TaskCommentNoticeEmail 评论通知邮件任务
	TaskCommentNoticeEmail = constants.TaskCommentNotice
)

// PasswordResetEmailPayload 密码重置邮件任务载荷
type PasswordResetEmailPayload struct {
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

// CommentNoticeEmailPayload 评论通知邮件任务载荷
type CommentNoticeEmailPayload struct {
	CommentID uint `json:"comment_id"`
	PostID    uint `json:"post_id"`
}

// NewPasswordResetEmailTask 创建密码重置邮件任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetEmail, body), nil
}

// NewCommentNoticeEmailTask 创建评论通知邮件任务
func NewCommentNoticeEmailTask(payload CommentNoticeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentNoticeEmail, body), nil
}
