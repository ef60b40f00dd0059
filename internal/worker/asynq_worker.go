package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/provider"
	"github.com/inkwell-blog/inkwell/internal/queue"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
	mux.HandleFunc(queue.TaskCommentNoticeEmail, c.handleCommentNoticeEmail)
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_password_reset_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.ResetToken == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_password_reset_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_password_reset_email_skip_user_not_found", "user_id", payload.UserID)
		return nil
	}
	// 用户在任务消费前又发起了新的重置请求，旧令牌作废
	if user.PasswordResetToken == nil || *user.PasswordResetToken != payload.ResetToken {
		logger.Debugw("worker_password_reset_email_skip_stale_token", "user_id", payload.UserID)
		return nil
	}
	receiver := strings.TrimSpace(payload.Email)
	if receiver == "" {
		receiver = strings.TrimSpace(user.Email)
	}
	if receiver == "" {
		logger.Debugw("worker_password_reset_email_skip_empty_receiver", "user_id", user.ID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_password_reset_email_skip_email_service_nil", "user_id", user.ID)
		return nil
	}
	if err := c.EmailService.SendPasswordResetEmail(receiver, user.FullName(), payload.ResetToken); err != nil {
		logger.Warnw("worker_password_reset_email_send_failed",
			"user_id", user.ID,
			"receiver_email", receiver,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleCommentNoticeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_notice_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CommentNoticeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_comment_notice_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.CommentID == 0 {
		logger.Debugw("worker_comment_notice_email_skip_invalid_payload", "comment_id", payload.CommentID)
		return nil
	}
	comment, err := c.CommentRepo.GetByID(payload.CommentID)
	if err != nil {
		logger.Warnw("worker_comment_notice_email_fetch_comment_failed", "comment_id", payload.CommentID, "error", err)
		return err
	}
	if comment == nil {
		logger.Debugw("worker_comment_notice_email_skip_comment_not_found", "comment_id", payload.CommentID)
		return nil
	}
	post, err := c.PostRepo.GetWithRelations(comment.PostID)
	if err != nil {
		logger.Warnw("worker_comment_notice_email_fetch_post_failed", "post_id", comment.PostID, "error", err)
		return err
	}
	if post == nil || post.Author == nil {
		logger.Debugw("worker_comment_notice_email_skip_post_not_found", "post_id", comment.PostID)
		return nil
	}
	// 作者给自己文章评论时不发通知
	if strings.EqualFold(post.Author.Email, comment.AuthorEmail) {
		logger.Debugw("worker_comment_notice_email_skip_self_comment", "comment_id", comment.ID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_comment_notice_email_skip_email_service_nil", "comment_id", comment.ID)
		return nil
	}
	if err := c.EmailService.SendCommentNoticeEmail(post.Author.Email, post.Title, comment.AuthorName, comment.Content); err != nil {
		logger.Warnw("worker_comment_notice_email_send_failed",
			"comment_id", comment.ID,
			"post_id", post.ID,
			"error", err,
		)
		return err
	}
	return nil
}
