// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BoringLink/yisu-hotel-backend/internal/models"
)

// RoomRepository 房型仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房型仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房型
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房型
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDWithHotel 根据 ID 获取房型（包含酒店信息）
func (r *RoomRepository) GetByIDWithHotel(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetForUpdate 在事务内按 ID 锁定房型行
// 预订扣减库存时串行化同一房型的并发请求
// SQLite 不支持 FOR UPDATE，写事务本身串行，跳过锁子句
func (r *RoomRepository) GetForUpdate(tx *gorm.DB, id int64) (*models.Room, error) {
	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room models.Room
	err := query.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update 更新房型
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// UpdateFields 更新指定字段
func (r *RoomRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error
}

// ListByHotel 获取酒店下的房型列表
func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("price ASC").
		Find(&rooms).Error
	return rooms, err
}

// DeleteByHotel 删除酒店下的全部房型
func (r *RoomRepository) DeleteByHotel(ctx context.Context, hotelID int64) error {
	return r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Delete(&models.Room{}).Error
}

// Delete 删除房型
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// GetMinPrice 获取酒店最低房价
func (r *RoomRepository) GetMinPrice(ctx context.Context, hotelID int64) (*float64, error) {
	var result struct {
		MinPrice *float64
	}
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Select("MIN(price) as min_price").
		Where("hotel_id = ?", hotelID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result.MinPrice, nil
}

// CountByHotel 统计酒店下的房型数量
func (r *RoomRepository) CountByHotel(ctx context.Context, hotelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("hotel_id = ?", hotelID).
		Count(&count).Error
	return count, err
}
