package main

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 示例作者账号
	author := seedAuthor(stdLog.Printf)

	// 添加分类
	categories := []models.Category{
		{Name: "Engineering", Description: "Behind the scenes of how things get built"},
		{Name: "Product", Description: "Release notes and product thinking"},
		{Name: "Culture", Description: "People and process"},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 添加标签
	tags := []models.Tag{
		{Name: "golang"},
		{Name: "postgres"},
		{Name: "tutorial"},
	}
	for _, tag := range tags {
		var existing models.Tag
		if err := models.DB.Where("name = ?", tag.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tag).Error; err != nil {
				stdLog.Printf("Failed to create tag %s: %v", tag.Name, err)
			} else {
				stdLog.Printf("Created tag: %s", tag.Name)
			}
		} else {
			stdLog.Printf("Tag already exists: %s", tag.Name)
		}
	}

	if author == nil {
		stdLog.Printf("No author available, skipped sample posts")
		return
	}

	// 添加示例文章
	var engineering models.Category
	_ = models.DB.Where("name = ?", "Engineering").First(&engineering).Error
	var golangTag models.Tag
	_ = models.DB.Where("name = ?", "golang").First(&golangTag).Error

	now := time.Now()
	posts := []models.Post{
		{
			Title:       "Hello, Inkwell",
			Summary:     "A quick tour of the blog engine and how to publish your first post.",
			PublishedAt: &now,
			Body: models.JSON(map[string]interface{}{
				"blocks": []interface{}{
					map[string]interface{}{"type": "paragraph", "text": "Welcome to Inkwell."},
				},
			}),
			AuthorID:   author.ID,
			Categories: []models.Category{engineering},
			Tags:       []models.Tag{golangTag},
		},
		{
			Title:       "Structuring Content as JSON",
			Summary:     "Why the post body is a JSON document instead of raw HTML.",
			PublishedAt: &now,
			Body: models.JSON(map[string]interface{}{
				"blocks": []interface{}{
					map[string]interface{}{"type": "paragraph", "text": "Rich text stays portable when stored as structured blocks."},
				},
			}),
			AuthorID: author.ID,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("title = ?", post.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Title, err)
			} else {
				stdLog.Printf("Created post: %s", post.Title)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Title)
		}
	}
}

// seedAuthor 返回示例作者，不存在时创建
func seedAuthor(printf func(format string, v ...interface{})) *models.User {
	const email = "author@example.com"
	var existing models.User
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		printf("Author already exists: %s", email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("inkwell-demo"), bcrypt.DefaultCost)
	if err != nil {
		printf("Failed to hash author password: %v", err)
		return nil
	}
	author := models.User{
		Email:        email,
		FirstName:    "Demo",
		LastName:     "Author",
		Role:         constants.RoleUser,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	if err := models.DB.Create(&author).Error; err != nil {
		printf("Failed to create author: %v", err)
		return nil
	}
	printf("Created author: %s", email)
	return &author
}
