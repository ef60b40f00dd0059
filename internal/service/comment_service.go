package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/queue"
	"github.com/inkwell-blog/inkwell/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	captchaSvc  *CaptchaService
	queueClient *queue.Client
}

// NewCommentService 创建评论服务
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	captchaSvc *CaptchaService,
	queueClient *queue.Client,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		captchaSvc:  captchaSvc,
		queueClient: queueClient,
	}
}

// CreateCommentInput 创建评论输入
type CreateCommentInput struct {
	PostID          uint
	AuthorName      string
	AuthorEmail     string
	Content         string
	ParentCommentID *uint
	CaptchaID       string
	CaptchaCode     string
}

// Create 创建评论
// 登录用户的署名以账号资料为准，匿名评论必须带姓名和邮箱并通过验证码。
func (s *CommentService) Create(actor *models.User, input CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, NewValidationError("content", "content is required")
	}

	post, err := s.postRepo.GetByID(input.PostID)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if post == nil {
		return nil, NewNotFoundError(constants.ResourcePost, input.PostID)
	}

	comment := models.Comment{
		PostID:     post.ID,
		Content:    content,
		IsApproved: true,
	}

	if actor != nil {
		comment.AuthorName = actor.FullName()
		comment.AuthorEmail = actor.Email
		userID := actor.ID
		comment.UserID = &userID
	} else {
		name := strings.TrimSpace(input.AuthorName)
		email := strings.ToLower(strings.TrimSpace(input.AuthorEmail))
		if name == "" {
			return nil, NewValidationError("author_name", "author_name is required for anonymous comments")
		}
		if email == "" {
			return nil, NewValidationError("author_email", "author_email is required for anonymous comments")
		}
		if err := s.captchaSvc.Verify(constants.CaptchaSceneAnonymousComment, input.CaptchaID, input.CaptchaCode); err != nil {
			return nil, err
		}
		comment.AuthorName = name
		comment.AuthorEmail = email
	}

	if input.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(*input.ParentCommentID)
		if err != nil {
			return nil, NewInternalError(err)
		}
		if parent == nil || parent.PostID != post.ID {
			return nil, NewNotFoundError(constants.ResourceComment, *input.ParentCommentID)
		}
		comment.ParentCommentID = input.ParentCommentID
	}

	if err := s.commentRepo.Create(&comment); err != nil {
		return nil, NewInternalError(err)
	}

	if err := s.queueClient.EnqueueCommentNoticeEmail(queue.CommentNoticeEmailPayload{
		CommentID: comment.ID,
		PostID:    post.ID,
	}); err != nil {
		logger.Warnw("comment_notice_enqueue_failed", "comment_id", comment.ID, "error", err)
	}
	return &comment, nil
}

// ListByPost 获取文章评论，公开调用只返回已放出的评论
func (s *CommentService) ListByPost(postID uint, page, pageSize int, includeUnapproved bool) ([]models.Comment, int64, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	if post == nil {
		return nil, 0, NewNotFoundError(constants.ResourcePost, postID)
	}
	comments, total, err := s.commentRepo.List(repository.CommentListFilter{
		Page:         page,
		PageSize:     pageSize,
		PostID:       postID,
		OnlyApproved: !includeUnapproved,
	})
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return comments, total, nil
}

// List 评论列表（后台审核用）
func (s *CommentService) List(filter repository.CommentListFilter) ([]models.Comment, int64, error) {
	comments, total, err := s.commentRepo.List(filter)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return comments, total, nil
}

// SetApproval 审核评论
func (s *CommentService) SetApproval(id uint, approved bool) (*models.Comment, error) {
	comment, err := s.commentRepo.Update(id, map[string]interface{}{"is_approved": approved})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourceComment, id)
		}
		return nil, NewInternalError(err)
	}
	return comment, nil
}

// Delete 删除评论，管理员或评论作者本人可操作
func (s *CommentService) Delete(id uint, actor *models.User) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if comment == nil {
		return nil, NewNotFoundError(constants.ResourceComment, id)
	}
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if actor.Role != constants.RoleAdmin {
		if comment.UserID == nil || *comment.UserID != actor.ID {
			return nil, ErrForbidden
		}
	}

	deleted, err := s.commentRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError(constants.ResourceComment, id)
		}
		return nil, NewInternalError(err)
	}
	return deleted, nil
}
