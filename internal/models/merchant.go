package models

import (
	"time"
)

// Merchant 商户模型
type Merchant struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	ContactPhone *string    `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	Status       int8       `gorm:"type:smallint;not null;default:1" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotels []Hotel `gorm:"foreignKey:MerchantID" json:"hotels,omitempty"`
}

// TableName 表名
func (Merchant) TableName() string {
	return "merchants"
}

// MerchantStatus 商户状态
const (
	MerchantStatusDisabled = 0 // 禁用
	MerchantStatusActive   = 1 // 正常
)
