// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/models"
)

// HotelRepository 酒店仓储
type HotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository 创建酒店仓储
func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create 创建酒店（级联创建房型、图片、设施等子资源）
func (r *HotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// GetByID 根据 ID 获取酒店
func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).First(&hotel, id).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// GetByIDWithDetails 根据 ID 获取酒店（包含全部关联）
func (r *HotelRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("price ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort ASC")
		}).
		Preload("Facilities").
		Preload("Promotions").
		Preload("NearbyAttractions").
		Preload("Tags").
		First(&hotel, id).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// Update 更新酒店
func (r *HotelRepository) Update(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// UpdateFields 更新指定字段
func (r *HotelRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus 更新酒店审核状态
func (r *HotelRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", id).Update("status", status).Error
}

// ReplaceChildren 重建酒店的子资源（图片、设施、促销、周边景点）
// 商户编辑酒店时整体替换，在事务内先删后建
func (r *HotelRepository) ReplaceChildren(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.HotelImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.Facility{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.Promotion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.NearbyAttraction{}).Error; err != nil {
			return err
		}
		return tx.Omit("Rooms", "Tags").Save(hotel).Error
	})
}

// List 获取酒店列表
func (r *HotelRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hotel{})

	// 应用过滤条件
	if merchantID, ok := filters["merchant_id"].(int64); ok && merchantID > 0 {
		query = query.Where("merchant_id = ?", merchantID)
	}
	if name, ok := filters["name"].(string); ok && name != "" {
		query = query.Where("name_zh LIKE ? OR name_en LIKE ?", "%"+name+"%", "%"+name+"%")
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if starRating, ok := filters["star_rating"].(int); ok && starRating > 0 {
		query = query.Where("star_rating = ?", starRating)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// ListByMerchant 获取商户名下的酒店列表
func (r *HotelRepository) ListByMerchant(ctx context.Context, merchantID int64, offset, limit int, status string) ([]*models.Hotel, int64, error) {
	filters := map[string]interface{}{
		"merchant_id": merchantID,
	}
	if status != "" {
		filters["status"] = status
	}
	return r.List(ctx, offset, limit, filters)
}

// ListPending 获取待审核的酒店列表（管理端）
func (r *HotelRepository) ListPending(ctx context.Context, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("status = ?", models.HotelStatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 待审核列表按提交时间正序，先提交先审核
	if err := query.Preload("Merchant").Order("created_at ASC").
		Offset(offset).Limit(limit).Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// HotelSearchFilter 公开搜索过滤条件
type HotelSearchFilter struct {
	Keyword  string
	Location string
	StarMin  *int
	StarMax  *int
	PriceMin *float64
	PriceMax *float64
	TagIDs   []int64
}

// Search 搜索已上架的酒店
// 价格条件基于酒店最低房价，只有带价格条件时才排除无房型的酒店
func (r *HotelRepository) Search(ctx context.Context, filter HotelSearchFilter, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("status = ?", models.HotelStatusApproved)

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("LOWER(name_zh) LIKE LOWER(?) OR LOWER(name_en) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", kw, kw, kw)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(address) LIKE LOWER(?)", "%"+filter.Location+"%")
	}
	if filter.StarMin != nil {
		query = query.Where("star_rating >= ?", *filter.StarMin)
	}
	if filter.StarMax != nil {
		query = query.Where("star_rating <= ?", *filter.StarMax)
	}
	if len(filter.TagIDs) > 0 {
		// 命中任一标签即可
		tagged := r.db.Table("hotel_tags").Select("hotel_id").Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("hotels.id IN (?)", tagged)
	}
	if filter.PriceMin != nil || filter.PriceMax != nil {
		priced := r.db.Table("rooms").Select("hotel_id").Group("hotel_id")
		if filter.PriceMin != nil {
			priced = priced.Having("MIN(price) >= ?", *filter.PriceMin)
		}
		if filter.PriceMax != nil {
			priced = priced.Having("MIN(price) <= ?", *filter.PriceMax)
		}
		query = query.Where("hotels.id IN (?)", priced)
	}

	// 统计总数（分页前）
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("price ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort ASC")
		}).
		Preload("Tags").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// ListWithCoordinates 获取带经纬度的已上架酒店，距离计算在服务层完成
func (r *HotelRepository) ListWithCoordinates(ctx context.Context) ([]*models.Hotel, error) {
	var hotels []*models.Hotel
	err := r.db.WithContext(ctx).
		Where("status = ?", models.HotelStatusApproved).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&hotels).Error
	return hotels, err
}

// Delete 删除酒店
func (r *HotelRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Hotel{}, id).Error
}

// CountByStatus 按状态统计酒店数量
func (r *HotelRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByMerchant 统计商户名下的酒店数量
func (r *HotelRepository) CountByMerchant(ctx context.Context, merchantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	return count, err
}
