package models

import (
	"time"
)

// Reservation 预订模型
type Reservation struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationNo string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"reservation_no"`
	HotelID       int64      `gorm:"index;not null" json:"hotel_id"`
	RoomID        int64      `gorm:"index;not null" json:"room_id"`
	CheckInDate   time.Time  `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate  time.Time  `gorm:"type:date;not null;index" json:"check_out_date"`
	ContactName   string     `gorm:"type:varchar(50);not null" json:"contact_name"`
	ContactPhone  string     `gorm:"type:varchar(20);not null" json:"contact_phone"`
	ContactEmail  *string    `gorm:"type:varchar(100)" json:"contact_email,omitempty"`
	TotalPrice    float64    `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status        string     `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	Remark        *string    `gorm:"type:varchar(255)" json:"remark,omitempty"`
	CheckedInAt   *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt  *time.Time `json:"checked_out_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotel  *Hotel  `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Guests []Guest `gorm:"many2many:reservation_guests" json:"guests,omitempty"`
}

// TableName 表名
func (Reservation) TableName() string {
	return "reservations"
}

// ReservationStatus 预订状态
const (
	ReservationStatusConfirmed = "confirmed" // 已确认
	ReservationStatusCheckIn   = "check_in"  // 已入住
	ReservationStatusCheckOut  = "check_out" // 已退房
	ReservationStatusCancelled = "cancelled" // 已取消
)

// Guest 入住人模型
type Guest struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	IDType    string    `gorm:"type:varchar(20);not null;default:'id_card'" json:"id_type"`
	IDNumber  string    `gorm:"type:varchar(50);not null;index" json:"id_number"`
	Phone     *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Reservations []Reservation `gorm:"many2many:reservation_guests" json:"reservations,omitempty"`
}

// TableName 表名
func (Guest) TableName() string {
	return "guests"
}

// GuestIDType 证件类型
const (
	GuestIDTypeIDCard   = "id_card"  // 身份证
	GuestIDTypePassport = "passport" // 护照
	GuestIDTypeOther    = "other"    // 其他
)

// ReservationGuest 预订入住人关联
type ReservationGuest struct {
	ReservationID int64     `gorm:"primaryKey" json:"reservation_id"`
	GuestID       int64     `gorm:"primaryKey" json:"guest_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 表名
func (ReservationGuest) TableName() string {
	return "reservation_guests"
}
