// Package auth 提供认证服务
package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/crypto"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/jwt"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/logger"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/utils"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// AuthService 认证服务
type AuthService struct {
	db           *gorm.DB
	merchantRepo *repository.MerchantRepository
	adminRepo    *repository.AdminRepository
	jwtManager   *jwt.Manager
}

// NewAuthService 创建认证服务
func NewAuthService(
	db *gorm.DB,
	merchantRepo *repository.MerchantRepository,
	adminRepo *repository.AdminRepository,
	jwtManager *jwt.Manager,
) *AuthService {
	return &AuthService{
		db:           db,
		merchantRepo: merchantRepo,
		adminRepo:    adminRepo,
		jwtManager:   jwtManager,
	}
}

// MerchantRegisterRequest 商户注册请求
type MerchantRegisterRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Password     string  `json:"password" binding:"required,min=6"`
	ContactPhone *string `json:"contact_phone"`
}

// MerchantLoginRequest 商户登录请求
type MerchantLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MerchantInfo 商户信息
type MerchantInfo struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}

// AdminInfo 管理员信息
type AdminInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// MerchantLoginResponse 商户登录响应
type MerchantLoginResponse struct {
	Merchant  *MerchantInfo  `json:"merchant"`
	TokenPair *jwt.TokenPair `json:"token"`
}

// AdminLoginResponse 管理员登录响应
type AdminLoginResponse struct {
	Admin     *AdminInfo     `json:"admin"`
	TokenPair *jwt.TokenPair `json:"token"`
}

// MerchantRegister 商户注册
func (s *AuthService) MerchantRegister(ctx context.Context, req *MerchantRegisterRequest) (*MerchantLoginResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.ErrInvalidParams.WithMessage("邮箱格式错误")
	}

	exists, err := s.merchantRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	merchant := &models.Merchant{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		ContactPhone: req.ContactPhone,
		Status:       models.MerchantStatusActive,
	}

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("商户注册成功", logger.MerchantID(merchant.ID))

	tokenPair, err := s.jwtManager.GenerateTokenPair(merchant.ID, jwt.UserTypeMerchant, "")
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	return &MerchantLoginResponse{
		Merchant:  s.toMerchantInfo(merchant),
		TokenPair: tokenPair,
	}, nil
}

// MerchantLogin 商户登录
func (s *AuthService) MerchantLogin(ctx context.Context, req *MerchantLoginRequest) (*MerchantLoginResponse, error) {
	merchant, err := s.merchantRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPasswordError
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.Password, merchant.PasswordHash) {
		return nil, errors.ErrPasswordError
	}

	if merchant.Status == models.MerchantStatusDisabled {
		return nil, errors.ErrAccountDisabled
	}

	if err := s.merchantRepo.UpdateLastLogin(ctx, merchant.ID); err != nil {
		logger.Warn("更新商户登录时间失败", logger.MerchantID(merchant.ID))
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(merchant.ID, jwt.UserTypeMerchant, "")
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	return &MerchantLoginResponse{
		Merchant:  s.toMerchantInfo(merchant),
		TokenPair: tokenPair,
	}, nil
}

// AdminLogin 管理员登录
func (s *AuthService) AdminLogin(ctx context.Context, req *AdminLoginRequest, ip string) (*AdminLoginResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPasswordError
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.Password, admin.PasswordHash) {
		return nil, errors.ErrPasswordError
	}

	if admin.Status == models.AdminStatusDisabled {
		return nil, errors.ErrAccountDisabled
	}

	if err := s.adminRepo.UpdateLoginInfo(ctx, admin.ID, ip); err != nil {
		logger.Warn("更新管理员登录信息失败", logger.AdminID(admin.ID))
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(admin.ID, jwt.UserTypeAdmin, admin.Role)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	return &AdminLoginResponse{
		Admin:     s.toAdminInfo(admin),
		TokenPair: tokenPair,
	}, nil
}

// RefreshToken 刷新 Token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	tokenPair, err := s.jwtManager.RefreshToken(refreshToken)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}
	return tokenPair, nil
}

// GetMerchantByID 根据 ID 获取商户
func (s *AuthService) GetMerchantByID(ctx context.Context, id int64) (*MerchantInfo, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMerchantNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.toMerchantInfo(merchant), nil
}

// ChangeMerchantPasswordRequest 商户修改密码请求
type ChangeMerchantPasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangeMerchantPassword 商户修改密码
func (s *AuthService) ChangeMerchantPassword(ctx context.Context, merchantID int64, req *ChangeMerchantPasswordRequest) error {
	merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrMerchantNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.OldPassword, merchant.PasswordHash) {
		return errors.ErrPasswordError
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}

	return s.merchantRepo.UpdateFields(ctx, merchantID, map[string]interface{}{
		"password_hash": hash,
	})
}

// toMerchantInfo 转换为商户信息
func (s *AuthService) toMerchantInfo(merchant *models.Merchant) *MerchantInfo {
	return &MerchantInfo{
		ID:           merchant.ID,
		Name:         merchant.Name,
		Email:        merchant.Email,
		ContactPhone: merchant.ContactPhone,
	}
}

// toAdminInfo 转换为管理员信息
func (s *AuthService) toAdminInfo(admin *models.Admin) *AdminInfo {
	return &AdminInfo{
		ID:       admin.ID,
		Username: admin.Username,
		Name:     admin.Name,
		Role:     admin.Role,
	}
}
