package models

import (
	"time"
)

// Admin 管理员模型
type Admin struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(50);not null" json:"name"`
	Email        *string    `gorm:"type:varchar(100)" json:"email,omitempty"`
	Role         string     `gorm:"type:varchar(50);not null;default:'reviewer'" json:"role"`
	Status       int8       `gorm:"type:smallint;not null;default:1" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP  *string    `gorm:"type:varchar(45)" json:"last_login_ip,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Admin) TableName() string {
	return "admins"
}

// AdminStatus 管理员状态
const (
	AdminStatusDisabled = 0 // 禁用
	AdminStatusActive   = 1 // 正常
)

// AdminRole 管理员角色
const (
	AdminRoleSuper    = "super_admin"
	AdminRoleReviewer = "reviewer"
)

// OperationLog 管理员操作日志
type OperationLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID    int64     `gorm:"index;not null" json:"admin_id"`
	Module     string    `gorm:"type:varchar(50);not null" json:"module"`
	Action     string    `gorm:"type:varchar(50);not null" json:"action"`
	TargetType *string   `gorm:"type:varchar(50)" json:"target_type,omitempty"`
	TargetID   *int64    `json:"target_id,omitempty"`
	BeforeData JSON      `gorm:"type:jsonb" json:"before_data,omitempty"`
	AfterData  JSON      `gorm:"type:jsonb" json:"after_data,omitempty"`
	IP         string    `gorm:"type:varchar(45);not null" json:"ip"`
	UserAgent  *string   `gorm:"type:varchar(255)" json:"user_agent,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// 关联
	Admin *Admin `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// TableName 表名
func (OperationLog) TableName() string {
	return "operation_logs"
}
