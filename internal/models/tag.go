package models

import (
	"time"
)

// Tag 酒店标签
type Tag struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotels []Hotel `gorm:"many2many:hotel_tags" json:"hotels,omitempty"`
}

// TableName 表名
func (Tag) TableName() string {
	return "tags"
}

// HotelTag 酒店标签关联
type HotelTag struct {
	HotelID   int64     `gorm:"primaryKey" json:"hotel_id"`
	TagID     int64     `gorm:"primaryKey" json:"tag_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 表名
func (HotelTag) TableName() string {
	return "hotel_tags"
}
