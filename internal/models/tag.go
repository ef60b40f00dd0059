package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag 标签表
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	Name      string    `gorm:"uniqueIndex;not null" json:"name"` // 标签名
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"` // 唯一标识，由名称推导
	CreatedAt time.Time `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`          // 更新时间

	Posts []Post `gorm:"many2many:post_tags" json:"-"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// BeforeSave 名称变化时重新推导 slug
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Slug = DeriveSlug(t.Slug, t.Name)
	return nil
}
