// Package repository 提供数据访问层
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/models"
)

// GuestRepository 入住人仓储
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository 创建入住人仓储
func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create 创建入住人
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

// GetByID 根据 ID 获取入住人
func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).First(&guest, id).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// GetByIDNumber 根据证件号获取入住人
func (r *GuestRepository) GetByIDNumber(ctx context.Context, idType, idNumber string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Where("id_type = ? AND id_number = ?", idType, idNumber).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// FindOrCreateInTx 在事务内按证件号查找或创建入住人
// 同一证件号的住客只登记一次，重复预订复用已有档案
func (r *GuestRepository) FindOrCreateInTx(tx *gorm.DB, guest *models.Guest) (*models.Guest, error) {
	var existing models.Guest
	err := tx.Where("id_type = ? AND id_number = ?", guest.IDType, guest.IDNumber).
		First(&existing).Error
	if err == nil {
		// 补充缺失的联系方式
		if guest.Phone != nil && existing.Phone == nil {
			if err := tx.Model(&existing).Update("phone", guest.Phone).Error; err != nil {
				return nil, err
			}
			existing.Phone = guest.Phone
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := tx.Create(guest).Error; err != nil {
		return nil, err
	}
	return guest, nil
}

// Update 更新入住人
func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

// List 获取入住人列表
func (r *GuestRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Guest{})

	// 应用过滤条件
	if hotelID, ok := filters["hotel_id"].(int64); ok && hotelID > 0 {
		stayed := r.db.Table("reservation_guests").
			Select("reservation_guests.guest_id").
			Joins("JOIN reservations ON reservations.id = reservation_guests.reservation_id").
			Where("reservations.hotel_id = ?", hotelID)
		query = query.Where("guests.id IN (?)", stayed)
	}
	if roomID, ok := filters["room_id"].(int64); ok && roomID > 0 {
		stayed := r.db.Table("reservation_guests").
			Select("reservation_guests.guest_id").
			Joins("JOIN reservations ON reservations.id = reservation_guests.reservation_id").
			Where("reservations.room_id = ?", roomID)
		query = query.Where("guests.id IN (?)", stayed)
	}
	if name, ok := filters["name"].(string); ok && name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if idNumber, ok := filters["id_number"].(string); ok && idNumber != "" {
		query = query.Where("id_number = ?", idNumber)
	}
	if phone, ok := filters["phone"].(string); ok && phone != "" {
		query = query.Where("phone = ?", phone)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}

// ListByReservation 获取预订下的入住人列表
func (r *GuestRepository) ListByReservation(ctx context.Context, reservationID int64) ([]*models.Guest, error) {
	var guests []*models.Guest
	err := r.db.WithContext(ctx).
		Joins("JOIN reservation_guests ON reservation_guests.guest_id = guests.id").
		Where("reservation_guests.reservation_id = ?", reservationID).
		Find(&guests).Error
	return guests, err
}

// ListInHouseByHotel 获取酒店当前在住的住客花名册
// 在住 = 已入住且今天落在 [入住日, 退房日) 内，超期未退房的不计
func (r *GuestRepository) ListInHouseByHotel(ctx context.Context, hotelID int64, offset, limit int) ([]*models.Guest, int64, error) {
	var guests []*models.Guest
	var total int64

	now := time.Now()
	inHouse := r.db.Table("reservation_guests").
		Select("reservation_guests.guest_id").
		Joins("JOIN reservations ON reservations.id = reservation_guests.reservation_id").
		Where("reservations.hotel_id = ?", hotelID).
		Where("reservations.status = ?", models.ReservationStatusCheckIn).
		Where("reservations.check_in_date <= ? AND reservations.check_out_date > ?", now, now)

	query := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("guests.id IN (?)", inHouse)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("guests.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}

// CountReservations 统计入住人关联的预订数量
func (r *GuestRepository) CountReservations(ctx context.Context, guestID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReservationGuest{}).
		Where("guest_id = ?", guestID).
		Count(&count).Error
	return count, err
}
