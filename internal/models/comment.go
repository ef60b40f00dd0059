package models

import "time"

// Comment 评论表
// 匿名评论 UserID 为空；登录用户删除时级联删除其评论。
type Comment struct {
	ID              uint      `gorm:"primarykey" json:"id"`                     // 主键
	PostID          uint      `gorm:"not null;index" json:"post_id"`            // 所属文章
	AuthorName      string    `gorm:"not null" json:"author_name"`              // 评论者姓名
	AuthorEmail     string    `gorm:"not null" json:"author_email"`             // 评论者邮箱
	Content         string    `gorm:"not null" json:"content"`                  // 内容
	IsApproved      bool      `gorm:"not null" json:"is_approved"`              // 是否放出，创建方显式赋值（服务层默认放出）
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`           // 父评论（楼中楼）
	UserID          *uint     `gorm:"index" json:"user_id"`                     // 登录用户（可空）
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                               // 更新时间

	Post          *Post    `gorm:"foreignKey:PostID" json:"-"`
	ParentComment *Comment `gorm:"foreignKey:ParentCommentID" json:"-"`
	User          *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
