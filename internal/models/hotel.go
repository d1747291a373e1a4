package models

import (
	"time"
)

// Hotel 酒店模型
type Hotel struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID      int64      `gorm:"index;not null" json:"merchant_id"`
	NameZh          string     `gorm:"type:varchar(100);not null" json:"name_zh"`
	NameEn          string     `gorm:"type:varchar(100);not null" json:"name_en"`
	Address         string     `gorm:"type:varchar(255);not null" json:"address"`
	StarRating      int        `gorm:"not null" json:"star_rating"`
	OpeningDate     *time.Time `gorm:"type:date" json:"opening_date,omitempty"`
	Longitude       *float64   `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`
	Latitude        *float64   `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	Description     *string    `gorm:"type:text" json:"description,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectionReason *string    `gorm:"type:varchar(255)" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Merchant          *Merchant          `gorm:"foreignKey:MerchantID" json:"merchant,omitempty"`
	Rooms             []Room             `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
	Images            []HotelImage       `gorm:"foreignKey:HotelID" json:"images,omitempty"`
	Facilities        []Facility         `gorm:"foreignKey:HotelID" json:"facilities,omitempty"`
	Promotions        []Promotion        `gorm:"foreignKey:HotelID" json:"promotions,omitempty"`
	NearbyAttractions []NearbyAttraction `gorm:"foreignKey:HotelID" json:"nearby_attractions,omitempty"`
	Tags              []Tag              `gorm:"many2many:hotel_tags" json:"tags,omitempty"`
}

// TableName 表名
func (Hotel) TableName() string {
	return "hotels"
}

// HotelStatus 酒店审核状态
const (
	HotelStatusPending  = "pending"  // 待审核
	HotelStatusApproved = "approved" // 已上架
	HotelStatusRejected = "rejected" // 已驳回
	HotelStatusOffline  = "offline"  // 已下架
)

// Room 房型模型
type Room struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID     int64     `gorm:"index;not null" json:"hotel_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Capacity    int       `gorm:"not null;default:2" json:"capacity"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// HotelImage 酒店图片
type HotelImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID   int64     `gorm:"index;not null" json:"hotel_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	Sort      int       `gorm:"not null;default:0" json:"sort"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 表名
func (HotelImage) TableName() string {
	return "hotel_images"
}

// Facility 酒店设施
type Facility struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID int64   `gorm:"index;not null" json:"hotel_id"`
	Name    string  `gorm:"type:varchar(50);not null" json:"name"`
	Icon    *string `gorm:"type:varchar(100)" json:"icon,omitempty"`
}

// TableName 表名
func (Facility) TableName() string {
	return "facilities"
}

// Promotion 酒店促销
type Promotion struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID      int64     `gorm:"index;not null" json:"hotel_id"`
	Title        string    `gorm:"type:varchar(100);not null" json:"title"`
	DiscountType string    `gorm:"type:varchar(20);not null" json:"discount_type"`
	Value        float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`
}

// TableName 表名
func (Promotion) TableName() string {
	return "promotions"
}

// DiscountType 促销折扣类型
const (
	DiscountTypePercentage = "percentage" // 按比例
	DiscountTypeFixed      = "fixed"      // 按固定金额
)

// NearbyAttraction 周边景点
type NearbyAttraction struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID     int64   `gorm:"index;not null" json:"hotel_id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	DistanceKm  float64 `gorm:"type:decimal(6,2);not null" json:"distance_km"`
	Description *string `gorm:"type:varchar(255)" json:"description,omitempty"`
}

// TableName 表名
func (NearbyAttraction) TableName() string {
	return "nearby_attractions"
}
