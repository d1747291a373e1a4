// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BoringLink/yisu-hotel-backend/internal/models"
)

// TagRepository 标签仓储
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓储
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create 创建标签
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// GetByID 根据 ID 获取标签
func (r *TagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByName 根据名称获取标签
func (r *TagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByIDs 根据 ID 列表批量获取标签
func (r *TagRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// Update 更新标签
func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete 删除标签（连带解除酒店关联）
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.HotelTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// ListAll 获取全部标签
func (r *TagRepository) ListAll(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error
	return tags, err
}

// List 获取标签列表
func (r *TagRepository) List(ctx context.Context, offset, limit int, keyword string) ([]*models.Tag, int64, error) {
	var tags []*models.Tag
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Tag{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}

// ExistsByName 检查标签名称是否存在
func (r *TagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Attach 给酒店挂标签（重复挂载幂等）
func (r *TagRepository) Attach(ctx context.Context, hotelID, tagID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.HotelTag{HotelID: hotelID, TagID: tagID}).Error
}

// Detach 解除酒店标签
func (r *TagRepository) Detach(ctx context.Context, hotelID, tagID int64) error {
	return r.db.WithContext(ctx).
		Where("hotel_id = ? AND tag_id = ?", hotelID, tagID).
		Delete(&models.HotelTag{}).Error
}

// ReplaceForHotel 整体替换酒店的标签集合
func (r *TagRepository) ReplaceForHotel(ctx context.Context, hotelID int64, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", hotelID).Delete(&models.HotelTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := tx.Create(&models.HotelTag{HotelID: hotelID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByHotel 获取酒店的标签列表
func (r *TagRepository) ListByHotel(ctx context.Context, hotelID int64) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN hotel_tags ON hotel_tags.tag_id = tags.id").
		Where("hotel_tags.hotel_id = ?", hotelID).
		Order("tags.id ASC").
		Find(&tags).Error
	return tags, err
}

// CountHotels 统计标签关联的酒店数量
func (r *TagRepository) CountHotels(ctx context.Context, tagID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HotelTag{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}
