package models

import (
	"time"

	"gorm.io/gorm"
)

// Post 文章表
type Post struct {
	ID            uint       `gorm:"primarykey" json:"id"`                   // 主键
	PublishedAt   *time.Time `gorm:"index" json:"published_at"`              // 发布时间
	Title         string     `gorm:"not null" json:"title"`                  // 标题
	Slug          string     `gorm:"uniqueIndex;not null" json:"slug"`       // 唯一标识，由标题推导
	Summary       string     `gorm:"not null" json:"summary"`                // 摘要
	Body          JSON       `gorm:"type:json;not null" json:"body"`        // 富文本内容
	FeaturedImage string     `gorm:"not null" json:"featured_image"`        // 头图对象键
	ViewCount     int        `gorm:"not null;default:0" json:"view_count"`  // 浏览计数
	AuthorID      uint       `gorm:"not null;index" json:"author_id"`       // 作者外键
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt     time.Time  `gorm:"index" json:"updated_at"`               // 更新时间

	Author     *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Categories []Category `gorm:"many2many:post_categories" json:"categories"`
	Tags       []Tag      `gorm:"many2many:post_tags" json:"tags"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// BeforeSave 标题变化时重新推导 slug
func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.Slug = DeriveSlug(p.Slug, p.Title)
	return nil
}
