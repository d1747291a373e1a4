// Package auth 提供认证相关的 HTTP Handler
package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	authService "github.com/BoringLink/yisu-hotel-backend/internal/service/auth"
)

// Handler 认证处理器
type Handler struct {
	authService *authService.AuthService
}

// NewHandler 创建认证处理器
func NewHandler(authSvc *authService.AuthService) *Handler {
	return &Handler{
		authService: authSvc,
	}
}

// MerchantRegister 商户注册
// @Summary 商户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.MerchantRegisterRequest true "注册信息"
// @Success 200 {object} response.Response{data=authService.MerchantLoginResponse}
// @Router /api/v1/auth/register [post]
func (h *Handler) MerchantRegister(c *gin.Context) {
	var req authService.MerchantRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.authService.MerchantRegister(c.Request.Context(), &req)
	handler.MustSucceed(c, err, resp)
}

// MerchantLogin 商户登录
// @Summary 商户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.MerchantLoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=authService.MerchantLoginResponse}
// @Router /api/v1/auth/login [post]
func (h *Handler) MerchantLogin(c *gin.Context) {
	var req authService.MerchantLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.authService.MerchantLogin(c.Request.Context(), &req)
	handler.MustSucceed(c, err, resp)
}

// AdminLogin 管理员登录
// @Summary 管理员登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body authService.AdminLoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=authService.AdminLoginResponse}
// @Router /api/admin/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	var req authService.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.authService.AdminLogin(c.Request.Context(), &req, c.ClientIP())
	handler.MustSucceed(c, err, resp)
}

// RefreshToken 刷新令牌
// @Summary 刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=jwt.TokenPair}
// @Router /api/v1/auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	handler.MustSucceed(c, err, pair)
}

// GetProfile 获取当前商户信息
// @Summary 获取当前商户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=authService.MerchantInfo}
// @Router /api/v1/merchant/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	merchantID, ok := handler.RequireMerchantID(c)
	if !ok {
		return
	}

	info, err := h.authService.GetMerchantByID(c.Request.Context(), merchantID)
	handler.MustSucceed(c, err, info)
}

// ChangePassword 商户修改密码
// @Summary 商户修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body authService.ChangeMerchantPasswordRequest true "修改密码"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	merchantID, ok := handler.RequireMerchantID(c)
	if !ok {
		return
	}

	var req authService.ChangeMerchantPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.authService.ChangeMerchantPassword(c.Request.Context(), merchantID, &req)
	handler.MustSucceedWithMessage(c, err, "密码修改成功", nil)
}

// RegisterRoutes 注册公开认证路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.MerchantRegister)
		auth.POST("/login", h.MerchantLogin)
		auth.POST("/refresh", h.RefreshToken)
	}
}

// RegisterProtectedRoutes 注册需商户认证的路由
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	merchant := rg.Group("/merchant")
	{
		merchant.GET("/profile", h.GetProfile)
		merchant.PUT("/password", h.ChangePassword)
	}
}

// RegisterAdminRoutes 注册管理端登录路由
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.AdminLogin)
}
