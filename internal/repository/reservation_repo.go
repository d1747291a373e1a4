// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/models"
)

// ReservationRepository 预订仓储
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预订仓储
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// DB 返回底层连接，供服务层开启跨仓储事务
func (r *ReservationRepository) DB() *gorm.DB {
	return r.db
}

// Create 创建预订
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// CreateInTx 在事务内创建预订（含入住人关联）
func (r *ReservationRepository) CreateInTx(tx *gorm.DB, reservation *models.Reservation) error {
	return tx.Create(reservation).Error
}

// GetByID 根据 ID 获取预订
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByIDWithDetails 根据 ID 获取预订（包含关联信息）
func (r *ReservationRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Preload("Guests").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByReservationNo 根据预订号获取预订
func (r *ReservationRepository) GetByReservationNo(ctx context.Context, reservationNo string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Preload("Guests").
		Where("reservation_no = ?", reservationNo).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CountOverlapping 统计与给定日期区间重叠的未取消预订数量
// 区间为左闭右开，退房日与入住日相接不算重叠
func (r *ReservationRepository) CountOverlapping(tx *gorm.DB, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := tx.Model(&models.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status != ?", models.ReservationStatusCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&count).Error
	return count, err
}

// CountOverlappingCtx 统计重叠预订数量（非事务，用于可用性查询）
func (r *ReservationRepository) CountOverlappingCtx(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	return r.CountOverlapping(r.db.WithContext(ctx), roomID, checkIn, checkOut)
}

// Update 更新预订
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// UpdateFields 更新指定字段
func (r *ReservationRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Reservation{}).Where("id = ?", id).Updates(fields).Error
}

// MarkCheckedIn 标记入住，仅当当前状态为 confirmed 时生效
// 返回 false 表示状态已被并发流转，本次更新未生效
func (r *ReservationRepository) MarkCheckedIn(ctx context.Context, id int64) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.ReservationStatusConfirmed).
		Updates(map[string]interface{}{
			"status":        models.ReservationStatusCheckIn,
			"checked_in_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkCheckedOut 标记退房，仅当当前状态为 check_in 时生效
func (r *ReservationRepository) MarkCheckedOut(ctx context.Context, id int64) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.ReservationStatusCheckIn).
		Updates(map[string]interface{}{
			"status":         models.ReservationStatusCheckOut,
			"checked_out_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkCancelled 标记取消，仅当当前状态为 confirmed 时生效
func (r *ReservationRepository) MarkCancelled(ctx context.Context, id int64) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, models.ReservationStatusConfirmed).
		Updates(map[string]interface{}{
			"status":       models.ReservationStatusCancelled,
			"cancelled_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 获取预订列表
func (r *ReservationRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Reservation{})

	// 应用过滤条件
	if hotelID, ok := filters["hotel_id"].(int64); ok && hotelID > 0 {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if roomID, ok := filters["room_id"].(int64); ok && roomID > 0 {
		query = query.Where("room_id = ?", roomID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if reservationNo, ok := filters["reservation_no"].(string); ok && reservationNo != "" {
		query = query.Where("reservation_no LIKE ?", "%"+reservationNo+"%")
	}
	if contactPhone, ok := filters["contact_phone"].(string); ok && contactPhone != "" {
		query = query.Where("contact_phone = ?", contactPhone)
	}
	if startDate, ok := filters["start_date"].(time.Time); ok {
		query = query.Where("check_in_date >= ?", startDate)
	}
	if endDate, ok := filters["end_date"].(time.Time); ok {
		query = query.Where("check_in_date <= ?", endDate)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Preload("Hotel").
		Preload("Room").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// ListByHotel 获取酒店的预订列表
func (r *ReservationRepository) ListByHotel(ctx context.Context, hotelID int64, offset, limit int, status string) ([]*models.Reservation, int64, error) {
	filters := map[string]interface{}{
		"hotel_id": hotelID,
	}
	if status != "" {
		filters["status"] = status
	}
	return r.List(ctx, offset, limit, filters)
}

// ListByRoom 获取房型的预订列表
func (r *ReservationRepository) ListByRoom(ctx context.Context, roomID int64, offset, limit int) ([]*models.Reservation, int64, error) {
	filters := map[string]interface{}{
		"room_id": roomID,
	}
	return r.List(ctx, offset, limit, filters)
}

// ListOverlapping 获取与日期区间重叠的未取消预订列表
func (r *ReservationRepository) ListOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status != ?", models.ReservationStatusCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Find(&reservations).Error
	return reservations, err
}

// ListInHouseByHotel 获取酒店当前在住的预订列表
// 在住 = 已入住且今天落在 [入住日, 退房日) 内，超期未退房的不计
func (r *ReservationRepository) ListInHouseByHotel(ctx context.Context, hotelID int64, offset, limit int) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	now := time.Now()
	query := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("hotel_id = ?", hotelID).
		Where("status = ?", models.ReservationStatusCheckIn).
		Where("check_in_date <= ? AND check_out_date > ?", now, now)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Room").
		Preload("Guests").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reservations).Error; err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// CountByHotelAndStatus 统计酒店指定状态的预订数量
func (r *ReservationRepository) CountByHotelAndStatus(ctx context.Context, hotelID int64, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("hotel_id = ?", hotelID).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountTodayByHotel 统计酒店今日新增预订数量
func (r *ReservationRepository) CountTodayByHotel(ctx context.Context, hotelID int64) (int64, error) {
	var count int64
	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("hotel_id = ?", hotelID).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&count).Error
	return count, err
}
