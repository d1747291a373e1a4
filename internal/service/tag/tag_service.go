// Package tag 提供酒店标签服务
package tag

import (
	"context"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// TagService 标签服务
type TagService struct {
	tagRepo   *repository.TagRepository
	hotelRepo *repository.HotelRepository
}

// NewTagService 创建标签服务
func NewTagService(tagRepo *repository.TagRepository, hotelRepo *repository.HotelRepository) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		hotelRepo: hotelRepo,
	}
}

// SaveTagRequest 创建/更新标签请求
type SaveTagRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// Create 创建标签，名称唯一
func (s *TagService) Create(ctx context.Context, req *SaveTagRequest) (*models.Tag, error) {
	exists, err := s.tagRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrTagExists
	}

	tag := &models.Tag{Name: req.Name, Description: req.Description}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return tag, nil
}

// Update 更新标签名称
func (s *TagService) Update(ctx context.Context, tagID int64, req *SaveTagRequest) (*models.Tag, error) {
	tag, err := s.getTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if tag.Name != req.Name {
		exists, err := s.tagRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrTagExists
		}
	}

	tag.Name = req.Name
	if req.Description != nil {
		tag.Description = req.Description
	}
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return tag, nil
}

// Delete 删除标签，连带删除酒店关联
func (s *TagService) Delete(ctx context.Context, tagID int64) error {
	if _, err := s.getTag(ctx, tagID); err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, tagID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GetByID 获取标签
func (s *TagService) GetByID(ctx context.Context, tagID int64) (*models.Tag, error) {
	return s.getTag(ctx, tagID)
}

// List 获取标签列表
func (s *TagService) List(ctx context.Context, page, pageSize int, keyword string) ([]*models.Tag, int64, error) {
	offset := (page - 1) * pageSize
	tags, total, err := s.tagRepo.List(ctx, offset, pageSize, keyword)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return tags, total, nil
}

// ListAll 获取全部标签（公开接口，供搜索筛选使用）
func (s *TagService) ListAll(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.tagRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return tags, nil
}

// Attach 为酒店打标签，重复打标不报错
func (s *TagService) Attach(ctx context.Context, hotelID, tagID int64) error {
	if err := s.checkHotel(ctx, hotelID); err != nil {
		return err
	}
	if _, err := s.getTag(ctx, tagID); err != nil {
		return err
	}
	if err := s.tagRepo.Attach(ctx, hotelID, tagID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// Detach 移除酒店标签
func (s *TagService) Detach(ctx context.Context, hotelID, tagID int64) error {
	if err := s.checkHotel(ctx, hotelID); err != nil {
		return err
	}
	if _, err := s.getTag(ctx, tagID); err != nil {
		return err
	}
	if err := s.tagRepo.Detach(ctx, hotelID, tagID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// ListByHotel 获取酒店的标签列表
func (s *TagService) ListByHotel(ctx context.Context, hotelID int64) ([]*models.Tag, error) {
	if err := s.checkHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return tags, nil
}

func (s *TagService) getTag(ctx context.Context, tagID int64) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTagNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return tag, nil
}

func (s *TagService) checkHotel(ctx context.Context, hotelID int64) error {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}
