package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-blog/inkwell/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 用户鉴权快照
// 鉴权中间件命中缓存时不再查询数据库
type UserAuthState struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	UpdatedAt int64  `json:"updated_at"`
}

func userAuthStateKey(email string) string {
	return fmt.Sprintf("auth:user:%s", email)
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		UpdatedAt: time.Now().Unix(),
	}
}

// GetUserAuthState 获取用户鉴权快照
func GetUserAuthState(ctx context.Context, email string) (*UserAuthState, bool, error) {
	if email == "" {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(email), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.Email == "" {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.Email), state, authStateCacheTTL)
}

// DelUserAuthState 删除用户鉴权快照
// 用户被禁用、改密或删除后调用，避免旧快照继续放行。
func DelUserAuthState(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	return Del(ctx, userAuthStateKey(email))
}
