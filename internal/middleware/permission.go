// Package middleware 提供 HTTP 中间件
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
)

// PermissionChecker 权限检查器接口
type PermissionChecker interface {
	HasPermission(roleCode, permissionCode string) bool
	HasAnyPermission(roleCode string, permissionCodes []string) bool
	HasAllPermissions(roleCode string, permissionCodes []string) bool
}

// RequirePermission 要求指定权限
func RequirePermission(checker PermissionChecker, permissionCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !checker.HasPermission(role, permissionCode) {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAnyPermission 要求任一权限
func RequireAnyPermission(checker PermissionChecker, permissionCodes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !checker.HasAnyPermission(role, permissionCodes) {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAllPermissions 要求全部权限
func RequireAllPermissions(checker PermissionChecker, permissionCodes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if !checker.HasAllPermissions(role, permissionCodes) {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRoles 要求指定角色
func RequireRoles(roles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{})
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if _, ok := roleSet[role]; !ok {
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin 要求超级管理员权限
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRoles("super_admin")
}

// PermissionCodes 预定义权限码
const (
	// 酒店审核
	PermissionHotelReviewList = "hotel:review:list"
	PermissionHotelApprove    = "hotel:approve"
	PermissionHotelReject     = "hotel:reject"
	PermissionHotelOffline    = "hotel:offline"

	// 预订管理
	PermissionReservationList   = "reservation:list"
	PermissionReservationManage = "reservation:manage"

	// 标签管理
	PermissionTagManage = "tag:manage"

	// 系统管理
	PermissionSystemConfig = "system:config"
	PermissionSystemAdmin  = "system:admin"
)

// rolePermissions 角色到权限的静态映射。
// 审核员只能处理酒店审核，标签与系统管理归超级管理员。
var rolePermissions = map[string][]string{
	"super_admin": {
		PermissionHotelReviewList,
		PermissionHotelApprove,
		PermissionHotelReject,
		PermissionHotelOffline,
		PermissionReservationList,
		PermissionReservationManage,
		PermissionTagManage,
		PermissionSystemConfig,
		PermissionSystemAdmin,
	},
	"reviewer": {
		PermissionHotelReviewList,
		PermissionHotelApprove,
		PermissionHotelReject,
		PermissionHotelOffline,
		PermissionReservationList,
	},
}

// StaticChecker 基于静态角色表的权限检查器
type StaticChecker struct {
	perms map[string]map[string]struct{}
}

// NewStaticChecker 创建静态权限检查器
func NewStaticChecker(rolePerms map[string][]string) *StaticChecker {
	perms := make(map[string]map[string]struct{}, len(rolePerms))
	for role, codes := range rolePerms {
		set := make(map[string]struct{}, len(codes))
		for _, code := range codes {
			set[code] = struct{}{}
		}
		perms[role] = set
	}
	return &StaticChecker{perms: perms}
}

// DefaultChecker 返回使用内置角色表的权限检查器
func DefaultChecker() *StaticChecker {
	return NewStaticChecker(rolePermissions)
}

// HasPermission 判断角色是否拥有指定权限
func (s *StaticChecker) HasPermission(roleCode, permissionCode string) bool {
	set, ok := s.perms[roleCode]
	if !ok {
		return false
	}
	_, ok = set[permissionCode]
	return ok
}

// HasAnyPermission 判断角色是否拥有任一权限
func (s *StaticChecker) HasAnyPermission(roleCode string, permissionCodes []string) bool {
	for _, code := range permissionCodes {
		if s.HasPermission(roleCode, code) {
			return true
		}
	}
	return false
}

// HasAllPermissions 判断角色是否拥有全部权限
func (s *StaticChecker) HasAllPermissions(roleCode string, permissionCodes []string) bool {
	for _, code := range permissionCodes {
		if !s.HasPermission(roleCode, code) {
			return false
		}
	}
	return true
}
