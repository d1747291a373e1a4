// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/models"
)

// MerchantRepository 商户仓储
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository 创建商户仓储
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create 创建商户
func (r *MerchantRepository) Create(ctx context.Context, merchant *models.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

// GetByID 根据 ID 获取商户
func (r *MerchantRepository) GetByID(ctx context.Context, id int64) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).First(&merchant, id).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// GetByEmail 根据邮箱获取商户
func (r *MerchantRepository) GetByEmail(ctx context.Context, email string) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// Update 更新商户
func (r *MerchantRepository) Update(ctx context.Context, merchant *models.Merchant) error {
	return r.db.WithContext(ctx).Save(merchant).Error
}

// UpdateFields 更新指定字段
func (r *MerchantRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus 更新商户状态
func (r *MerchantRepository) UpdateStatus(ctx context.Context, id int64, status int8) error {
	return r.db.WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateLastLogin 更新最近登录时间
func (r *MerchantRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", id).
		Update("last_login_at", now).Error
}

// ExistsByEmail 检查邮箱是否已注册
func (r *MerchantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Merchant{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// List 获取商户列表
func (r *MerchantRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Merchant, int64, error) {
	var merchants []*models.Merchant
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Merchant{})

	// 应用过滤条件
	if name, ok := filters["name"].(string); ok && name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if email, ok := filters["email"].(string); ok && email != "" {
		query = query.Where("email LIKE ?", "%"+email+"%")
	}
	if status, ok := filters["status"].(int8); ok {
		query = query.Where("status = ?", status)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&merchants).Error; err != nil {
		return nil, 0, err
	}

	return merchants, total, nil
}

// Delete 删除商户
func (r *MerchantRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Merchant{}, id).Error
}
