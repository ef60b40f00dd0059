package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createTestAuthor(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	author := models.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "Author",
		Role:         "USER",
		IsActive:     true,
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("create author failed: %v", err)
	}
	return &author
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category %s failed: %v", name, err)
	}
	return &category
}

func createTestTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := models.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("create tag %s failed: %v", name, err)
	}
	return &tag
}

func TestPostCreateWithRelationsAndReload(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createTestAuthor(t, db, "author@create.test")
	catA := createTestCategory(t, db, "Backend")
	catB := createTestCategory(t, db, "Frontend")
	tag := createTestTag(t, db, "golang")

	post := models.Post{
		Title:      "My First Post",
		Summary:    "intro",
		Body:       models.JSON{"blocks": []interface{}{}},
		AuthorID:   author.ID,
		Categories: []models.Category{*catA, *catB},
		Tags:       []models.Tag{*tag},
	}
	if err := repo.CreateWithRelations(&post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.Slug != "my-first-post" {
		t.Fatalf("slug want my-first-post got %s", post.Slug)
	}
	if post.Author == nil || post.Author.ID != author.ID {
		t.Fatalf("expected author preloaded")
	}
	if len(post.Categories) != 2 {
		t.Fatalf("categories want 2 got %d", len(post.Categories))
	}
	if len(post.Tags) != 1 {
		t.Fatalf("tags want 1 got %d", len(post.Tags))
	}

	bySlug, err := repo.GetBySlug("my-first-post")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if bySlug == nil || bySlug.ID != post.ID {
		t.Fatalf("get by slug returned wrong post")
	}

	missing, err := repo.GetBySlug("does-not-exist")
	if err != nil {
		t.Fatalf("get missing slug failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing slug should return nil")
	}
}

func TestPostUpdateWithRelationsNilKeepsEmptyClears(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createTestAuthor(t, db, "author@assoc.test")
	catA := createTestCategory(t, db, "Infra")
	catB := createTestCategory(t, db, "Tooling")
	tag := createTestTag(t, db, "postgres")

	post := models.Post{
		Title:      "Association Semantics",
		Summary:    "s",
		Body:       models.JSON{"k": "v"},
		AuthorID:   author.ID,
		Categories: []models.Category{*catA},
		Tags:       []models.Tag{*tag},
	}
	if err := repo.CreateWithRelations(&post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	// nil 关联保持不变
	updated, err := repo.UpdateWithRelations(post.ID, map[string]interface{}{"summary": "updated"}, nil, nil)
	if err != nil {
		t.Fatalf("update fields failed: %v", err)
	}
	if updated.Summary != "updated" {
		t.Fatalf("summary want updated got %s", updated.Summary)
	}
	if len(updated.Categories) != 1 || len(updated.Tags) != 1 {
		t.Fatalf("nil associations should stay, got %d categories %d tags", len(updated.Categories), len(updated.Tags))
	}

	// 非空切片整体替换
	replacement := []models.Category{*catB}
	updated, err = repo.UpdateWithRelations(post.ID, nil, &replacement, nil)
	if err != nil {
		t.Fatalf("replace categories failed: %v", err)
	}
	if len(updated.Categories) != 1 || updated.Categories[0].ID != catB.ID {
		t.Fatalf("expected categories replaced with %d", catB.ID)
	}

	// 空切片清空
	empty := []models.Tag{}
	updated, err = repo.UpdateWithRelations(post.ID, nil, nil, &empty)
	if err != nil {
		t.Fatalf("clear tags failed: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Fatalf("tags should be cleared, got %d", len(updated.Tags))
	}

	// 未命中返回 ErrRecordNotFound
	if _, err := repo.UpdateWithRelations(99999, map[string]interface{}{"summary": "x"}, nil, nil); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestPostDeleteCleansJoinRowsAndComments(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createTestAuthor(t, db, "author@delete.test")
	cat := createTestCategory(t, db, "Ops")

	post := models.Post{
		Title:      "To Be Deleted",
		Summary:    "s",
		Body:       models.JSON{"k": "v"},
		AuthorID:   author.ID,
		Categories: []models.Category{*cat},
	}
	if err := repo.CreateWithRelations(&post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	comment := models.Comment{
		PostID:      post.ID,
		AuthorName:  "Anon",
		AuthorEmail: "anon@example.com",
		Content:     "hello",
		IsApproved:  true,
	}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	deleted, err := repo.Delete(post.ID)
	if err != nil {
		t.Fatalf("delete post failed: %v", err)
	}
	if deleted.ID != post.ID {
		t.Fatalf("deleted snapshot id want %d got %d", post.ID, deleted.ID)
	}

	var joinCount int64
	if err := db.Table("post_categories").Where("post_id = ?", post.ID).Count(&joinCount).Error; err != nil {
		t.Fatalf("count join rows failed: %v", err)
	}
	if joinCount != 0 {
		t.Fatalf("join rows should be cleared, got %d", joinCount)
	}

	var commentCount int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error; err != nil {
		t.Fatalf("count comments failed: %v", err)
	}
	if commentCount != 0 {
		t.Fatalf("comments should be deleted with the post, got %d", commentCount)
	}
}

func TestPostListFiltersAndViewCount(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewPostRepository(db)
	author := createTestAuthor(t, db, "author@list.test")
	other := createTestAuthor(t, db, "other@list.test")
	cat := createTestCategory(t, db, "Search")
	tag := createTestTag(t, db, "tutorial")

	first := models.Post{
		Title:      "Searchable Gopher Guide",
		Summary:    "s",
		Body:       models.JSON{"k": "v"},
		AuthorID:   author.ID,
		Categories: []models.Category{*cat},
		Tags:       []models.Tag{*tag},
	}
	second := models.Post{
		Title:    "Unrelated Notes",
		Summary:  "s",
		Body:     models.JSON{"k": "v"},
		AuthorID: other.ID,
	}
	if err := repo.CreateWithRelations(&first); err != nil {
		t.Fatalf("create first post failed: %v", err)
	}
	if err := repo.CreateWithRelations(&second); err != nil {
		t.Fatalf("create second post failed: %v", err)
	}

	posts, total, err := repo.List(PostListFilter{Search: "Gopher"})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || len(posts) != 1 || posts[0].ID != first.ID {
		t.Fatalf("search filter should match first post only")
	}

	posts, total, err = repo.List(PostListFilter{CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 1 || posts[0].ID != first.ID {
		t.Fatalf("category filter should match first post only")
	}

	posts, total, err = repo.List(PostListFilter{TagID: tag.ID})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if total != 1 || posts[0].ID != first.ID {
		t.Fatalf("tag filter should match first post only")
	}

	_, total, err = repo.List(PostListFilter{AuthorID: other.ID})
	if err != nil {
		t.Fatalf("list by author failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("author filter total want 1 got %d", total)
	}

	if err := repo.IncrementViewCount(first.ID); err != nil {
		t.Fatalf("increment view count failed: %v", err)
	}
	if err := repo.IncrementViewCount(first.ID); err != nil {
		t.Fatalf("increment view count failed: %v", err)
	}
	reloaded, err := repo.GetByID(first.ID)
	if err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if reloaded.ViewCount != 2 {
		t.Fatalf("view count want 2 got %d", reloaded.ViewCount)
	}
}
