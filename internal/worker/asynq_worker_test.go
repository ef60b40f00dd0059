package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/provider"
	"github.com/inkwell-blog/inkwell/internal/queue"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

func setupWorkerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	consumer := NewConsumer(&provider.Container{
		UserRepo:    repository.NewUserRepository(db),
		PostRepo:    repository.NewPostRepository(db),
		CommentRepo: repository.NewCommentRepository(db),
	})
	return consumer, db
}

func TestHandlePasswordResetEmailSkips(t *testing.T) {
	consumer, db := setupWorkerTest(t)
	ctx := context.Background()

	// 载荷无法解析
	task := asynq.NewTask(queue.TaskPasswordResetEmail, []byte("not-json"))
	if err := consumer.handlePasswordResetEmail(ctx, task); err == nil {
		t.Fatalf("broken payload should fail")
	}

	// 无效载荷直接跳过
	task, err := queue.NewPasswordResetEmailTask(queue.PasswordResetEmailPayload{})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handlePasswordResetEmail(ctx, task); err != nil {
		t.Fatalf("empty payload should be skipped, got %v", err)
	}

	// 用户不存在时不重试
	task, err = queue.NewPasswordResetEmailTask(queue.PasswordResetEmailPayload{UserID: 777, ResetToken: "token"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handlePasswordResetEmail(ctx, task); err != nil {
		t.Fatalf("missing user should be skipped, got %v", err)
	}

	// 令牌已被更新的任务作废
	stale := "stale-token"
	user := models.User{
		Email:              "reset@worker.test",
		FirstName:          "W",
		LastName:           "T",
		Role:               "USER",
		IsActive:           true,
		PasswordHash:       "hash",
		PasswordResetToken: &stale,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	task, err = queue.NewPasswordResetEmailTask(queue.PasswordResetEmailPayload{
		UserID:     user.ID,
		Email:      user.Email,
		ResetToken: "an-older-token",
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handlePasswordResetEmail(ctx, task); err != nil {
		t.Fatalf("stale token should be skipped, got %v", err)
	}
}

func TestHandleCommentNoticeEmailSkips(t *testing.T) {
	consumer, db := setupWorkerTest(t)
	ctx := context.Background()

	// 评论不存在时不重试
	task, err := queue.NewCommentNoticeEmailTask(queue.CommentNoticeEmailPayload{CommentID: 555})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleCommentNoticeEmail(ctx, task); err != nil {
		t.Fatalf("missing comment should be skipped, got %v", err)
	}

	// 作者评论自己的文章不发通知
	author := models.User{Email: "self@worker.test", FirstName: "S", LastName: "F", Role: "USER", IsActive: true, PasswordHash: "hash"}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	post := models.Post{Title: "Self Notice", Summary: "s", Body: models.JSON{"k": "v"}, AuthorID: author.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	comment := models.Comment{
		PostID:      post.ID,
		UserID:      &author.ID,
		AuthorName:  author.FullName(),
		AuthorEmail: author.Email,
		Content:     "note to self",
		IsApproved:  true,
	}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	task, err = queue.NewCommentNoticeEmailTask(queue.CommentNoticeEmailPayload{CommentID: comment.ID, PostID: post.ID})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleCommentNoticeEmail(ctx, task); err != nil {
		t.Fatalf("self comment should be skipped, got %v", err)
	}
}

func TestQueueClientDisabledNoOps(t *testing.T) {
	client, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("nil config should disable the client")
	}
	if err := client.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{UserID: 1, ResetToken: "t"}); err != nil {
		t.Fatalf("disabled enqueue should no-op, got %v", err)
	}
	if err := client.EnqueueCommentNoticeEmail(queue.CommentNoticeEmailPayload{CommentID: 1}); err != nil {
		t.Fatalf("disabled enqueue should no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close should no-op, got %v", err)
	}
}
