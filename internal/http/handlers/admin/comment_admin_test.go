package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/models"
	"github.com/inkwell-blog/inkwell/internal/provider"
	"github.com/inkwell-blog/inkwell/internal/queue"
	"github.com/inkwell-blog/inkwell/internal/repository"
	"github.com/inkwell-blog/inkwell/internal/service"
)

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	h := New(&provider.Container{
		CategoryService: service.NewCategoryService(repository.NewCategoryRepository(db)),
		TagService:      service.NewTagService(repository.NewTagRepository(db)),
		CommentService: service.NewCommentService(
			commentRepo,
			postRepo,
			service.NewCaptchaService(config.CaptchaConfig{}),
			queueClient,
		),
	})
	return h, db
}

func seedAdminUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Email:        "moderator@admin.test",
		FirstName:    "Site",
		LastName:     "Moderator",
		Role:         "ADMIN",
		IsActive:     true,
		PasswordHash: "hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return &user
}

func asAdmin(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("current_user", user)
		c.Next()
	}
}

func TestCategoryAdminLifecycle(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdminUser(t, db)

	engine := gin.New()
	engine.POST("/admin/categories", asAdmin(admin), h.CreateCategory)
	engine.PATCH("/admin/categories/:id", asAdmin(admin), h.UpdateCategory)
	engine.DELETE("/admin/categories/:id", asAdmin(admin), h.DeleteCategory)

	req := httptest.NewRequest(http.MethodPost, "/admin/categories", bytes.NewBufferString(`{"name":"Deep Dives","description":"long form"}`))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category want 201 got %d body %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data models.Category `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode category failed: %v", err)
	}
	if envelope.Data.Slug != "deep-dives" {
		t.Fatalf("slug want deep-dives got %s", envelope.Data.Slug)
	}
	categoryID := envelope.Data.ID

	// 重名冲突
	req = httptest.NewRequest(http.MethodPost, "/admin/categories", bytes.NewBufferString(`{"name":"Deep Dives"}`))
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate category want 409 got %d", rec.Code)
	}

	// 改名后 slug 跟随
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/categories/%d", categoryID), bytes.NewBufferString(`{"name":"Field Notes"}`))
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update category want 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode category failed: %v", err)
	}
	if envelope.Data.Slug != "field-notes" {
		t.Fatalf("slug want field-notes got %s", envelope.Data.Slug)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/categories/%d", categoryID), nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete category want 200 got %d", rec.Code)
	}
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		t.Fatalf("count categories failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("category should be removed, count %d", count)
	}

	// 删除不存在的分类
	req = httptest.NewRequest(http.MethodDelete, "/admin/categories/424242", nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing category want 404 got %d", rec.Code)
	}
}

func TestCommentModerationHandlers(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdminUser(t, db)

	author := models.User{Email: "writer@admin.test", FirstName: "W", LastName: "R", Role: "USER", IsActive: true, PasswordHash: "hash"}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	post := models.Post{Title: "Moderated", Summary: "s", Body: models.JSON{"k": "v"}, AuthorID: author.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	comment := models.Comment{PostID: post.ID, AuthorName: "Anon", AuthorEmail: "anon@example.com", Content: "hi", IsApproved: true}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	engine := gin.New()
	engine.GET("/admin/comments", asAdmin(admin), h.ListComments)
	engine.PATCH("/admin/comments/:id/approval", asAdmin(admin), h.SetCommentApproval)
	engine.DELETE("/admin/comments/:id", asAdmin(admin), h.DeleteComment)

	// 隐藏评论
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/comments/%d/approval", comment.ID), bytes.NewBufferString(`{"is_approved":false}`))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("hide comment want 200 got %d body %s", rec.Code, rec.Body.String())
	}
	var stored models.Comment
	if err := db.First(&stored, comment.ID).Error; err != nil {
		t.Fatalf("reload comment failed: %v", err)
	}
	if stored.IsApproved {
		t.Fatalf("comment should be hidden")
	}

	// 请求体缺少 is_approved
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/admin/comments/%d/approval", comment.ID), bytes.NewBufferString(`{}`))
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing is_approved want 400 got %d", rec.Code)
	}

	// 后台列表包含未放出的评论
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/admin/comments?post_id=%d", post.ID), nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list comments want 200 got %d", rec.Code)
	}
	var listEnvelope struct {
		Data       []models.Comment `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listEnvelope); err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if listEnvelope.Pagination.Total != 1 {
		t.Fatalf("moderation list total want 1 got %d", listEnvelope.Pagination.Total)
	}

	// 管理员删除匿名评论
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/comments/%d", comment.ID), nil)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete comment want 200 got %d", rec.Code)
	}
	var count int64
	if err := db.Model(&models.Comment{}).Count(&count).Error; err != nil {
		t.Fatalf("count comments failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("comment should be removed, count %d", count)
	}
}
