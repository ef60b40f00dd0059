package authz

import (
	"github.com/inkwell-blog/inkwell/internal/constants"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

// builtinPolicy 内建角色策略
type builtinPolicy struct {
	role   string
	object string
	action string
}

// 路由经 NormalizeObject 去掉 /api/v1 前缀后参与匹配
var builtinPolicies = []builtinPolicy{
	// 管理员可以访问全部接口
	{constants.RoleAdmin, "/*", "*"},

	// 普通用户可以管理自己的文章与上传
	{constants.RoleUser, "/posts", "POST"},
	{constants.RoleUser, "/posts/:id", "PATCH"},
	{constants.RoleUser, "/posts/:id", "DELETE"},
	{constants.RoleUser, "/posts/:id/featured-image", "PATCH"},
	{constants.RoleUser, "/comments/:id", "DELETE"},
	{constants.RoleUser, "/files/upload-url", "POST"},
	{constants.RoleUser, "/files/download-url", "GET"},
	{constants.RoleUser, "/me", "GET"},
	{constants.RoleUser, "/me", "PATCH"},
}

// BootstrapBuiltinRoles 写入内建角色策略
// AddPolicy 幂等，重复启动不会堆积重复规则。
func BootstrapBuiltinRoles(s *Service) error {
	if s == nil {
		return nil
	}
	for _, p := range builtinPolicies {
		if err := s.GrantRolePolicy(p.role, p.object, p.action); err != nil {
			return err
		}
	}
	if err := s.ReloadPolicy(); err != nil {
		return err
	}
	logger.Infow("authz_builtin_roles_ready", "policies", len(builtinPolicies))
	return nil
}
