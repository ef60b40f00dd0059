package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

// InitDefaultAdmin 初始化默认管理员账号
// 仅在指定邮箱不存在时创建，已存在则跳过。
func InitDefaultAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:           email,
		FirstName:       "Admin",
		LastName:        "User",
		Role:            constants.RoleAdmin,
		IsActive:        true,
		IsEmailVerified: true,
		PasswordHash:    string(hash),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Infow("default_admin_created", "email", email)
	return nil
}
