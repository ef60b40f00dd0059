package models

import (
	"time"
)

// User 用户表
// IsActive 不设列默认值：带 default 标签的布尔零值在 INSERT 时会被 gorm 省略，
// 显式创建停用账号会被默认值覆盖。启用与否由创建方显式赋值。
type User struct {
	ID                     uint       `gorm:"primarykey" json:"id"`                            // 主键
	Email                  string     `gorm:"uniqueIndex;not null" json:"email"`               // 邮箱
	FirstName              string     `gorm:"not null" json:"first_name"`                      // 名
	LastName               string     `gorm:"not null" json:"last_name"`                       // 姓
	Role                   string     `gorm:"not null;default:'USER';index" json:"role"`       // 角色（ADMIN/USER）
	IsActive               bool       `gorm:"not null" json:"is_active"`                       // 是否启用
	IsEmailVerified        bool       `gorm:"not null;default:false" json:"is_email_verified"` // 邮箱是否已验证
	PasswordHash           string     `gorm:"not null" json:"-"`                               // 密码哈希（不返回给前端）
	PasswordChangedAt      *time.Time `json:"-"`                                               // 最近改密时间
	PasswordResetToken     *string    `gorm:"index" json:"-"`                                  // 密码重置令牌
	PasswordResetExpiresAt *time.Time `json:"-"`                                               // 密码重置令牌过期时间
	LastLoginAt            *time.Time `json:"last_login_at"`                                   // 最后登录时间
	CreatedAt              time.Time  `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt              time.Time  `gorm:"index" json:"updated_at"`                         // 更新时间

	Posts []Post `gorm:"foreignKey:AuthorID" json:"-"` // 反向引用，不预加载
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 返回用于展示的全名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
