package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`             // 主键
	Name        string    `gorm:"uniqueIndex;not null" json:"name"` // 分类名
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"` // 唯一标识，由名称推导
	Description string    `json:"description"`                      // 描述（可空）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`          // 更新时间

	Posts []Post `gorm:"many2many:post_categories" json:"-"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// BeforeSave 名称变化时重新推导 slug
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = DeriveSlug(c.Slug, c.Name)
	return nil
}
