// Package hotel 提供酒店服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/logger"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// HotelService 商户侧酒店服务
type HotelService struct {
	db        *gorm.DB
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
	tagRepo   *repository.TagRepository
}

// NewHotelService 创建酒店服务
func NewHotelService(
	db *gorm.DB,
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	tagRepo *repository.TagRepository,
) *HotelService {
	return &HotelService{
		db:        db,
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
		tagRepo:   tagRepo,
	}
}

// RoomInput 房型输入
type RoomInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Capacity    int     `json:"capacity"`
	Quantity    int     `json:"quantity"`
	Description *string `json:"description"`
}

// ImageInput 图片输入
type ImageInput struct {
	URL  string `json:"url" binding:"required"`
	Sort int    `json:"sort"`
}

// FacilityInput 设施输入
type FacilityInput struct {
	Name string  `json:"name" binding:"required"`
	Icon *string `json:"icon"`
}

// PromotionInput 促销输入
type PromotionInput struct {
	Title        string  `json:"title" binding:"required"`
	DiscountType string  `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value        float64 `json:"value" binding:"required"`
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      string  `json:"end_date" binding:"required"`
}

// AttractionInput 周边景点输入
type AttractionInput struct {
	Name        string  `json:"name" binding:"required"`
	DistanceKm  float64 `json:"distance_km"`
	Description *string `json:"description"`
}

// SaveHotelRequest 创建/编辑酒店请求
type SaveHotelRequest struct {
	NameZh            string            `json:"name_zh" binding:"required"`
	NameEn            string            `json:"name_en" binding:"required"`
	Address           string            `json:"address" binding:"required"`
	StarRating        int               `json:"star_rating" binding:"required"`
	OpeningDate       *string           `json:"opening_date"`
	Longitude         *float64          `json:"longitude"`
	Latitude          *float64          `json:"latitude"`
	Description       *string           `json:"description"`
	Rooms             []RoomInput       `json:"rooms"`
	Images            []ImageInput      `json:"images"`
	Facilities        []FacilityInput   `json:"facilities"`
	Promotions        []PromotionInput  `json:"promotions"`
	NearbyAttractions []AttractionInput `json:"nearby_attractions"`
	TagIDs            []int64           `json:"tag_ids"`
}

// validate 校验请求字段
func (s *HotelService) validate(req *SaveHotelRequest) error {
	if req.StarRating < 1 || req.StarRating > 5 {
		return errors.ErrStarRatingInvalid
	}
	for _, room := range req.Rooms {
		if room.Price < 0 {
			return errors.ErrRoomPriceInvalid
		}
		if room.Quantity < 0 {
			return errors.ErrRoomQuantityError
		}
	}
	if req.OpeningDate != nil {
		if _, err := time.Parse(handler.DateFormat, *req.OpeningDate); err != nil {
			return errors.ErrInvalidDate
		}
	}
	for _, p := range req.Promotions {
		if _, err := time.Parse(handler.DateFormat, p.StartDate); err != nil {
			return errors.ErrInvalidDate
		}
		if _, err := time.Parse(handler.DateFormat, p.EndDate); err != nil {
			return errors.ErrInvalidDate
		}
	}
	return nil
}

// buildChildren 根据请求构建子资源
func (s *HotelService) buildChildren(hotel *models.Hotel, req *SaveHotelRequest) {
	hotel.Rooms = make([]models.Room, 0, len(req.Rooms))
	for _, in := range req.Rooms {
		capacity := in.Capacity
		if capacity <= 0 {
			capacity = 2
		}
		hotel.Rooms = append(hotel.Rooms, models.Room{
			Name:        in.Name,
			Price:       in.Price,
			Capacity:    capacity,
			Quantity:    in.Quantity,
			Description: in.Description,
		})
	}

	hotel.Images = make([]models.HotelImage, 0, len(req.Images))
	for _, in := range req.Images {
		hotel.Images = append(hotel.Images, models.HotelImage{URL: in.URL, Sort: in.Sort})
	}

	hotel.Facilities = make([]models.Facility, 0, len(req.Facilities))
	for _, in := range req.Facilities {
		hotel.Facilities = append(hotel.Facilities, models.Facility{Name: in.Name, Icon: in.Icon})
	}

	hotel.Promotions = make([]models.Promotion, 0, len(req.Promotions))
	for _, in := range req.Promotions {
		start, _ := time.Parse(handler.DateFormat, in.StartDate)
		end, _ := time.Parse(handler.DateFormat, in.EndDate)
		hotel.Promotions = append(hotel.Promotions, models.Promotion{
			Title:        in.Title,
			DiscountType: in.DiscountType,
			Value:        in.Value,
			StartDate:    start,
			EndDate:      end,
		})
	}

	hotel.NearbyAttractions = make([]models.NearbyAttraction, 0, len(req.NearbyAttractions))
	for _, in := range req.NearbyAttractions {
		hotel.NearbyAttractions = append(hotel.NearbyAttractions, models.NearbyAttraction{
			Name:        in.Name,
			DistanceKm:  in.DistanceKm,
			Description: in.Description,
		})
	}
}

// CreateHotel 商户提交酒店，初始状态为待审核
func (s *HotelService) CreateHotel(ctx context.Context, merchantID int64, req *SaveHotelRequest) (*models.Hotel, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		tags, err := s.tagRepo.GetByIDs(ctx, req.TagIDs)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if len(tags) != len(req.TagIDs) {
			return nil, errors.ErrTagNotFound
		}
	}

	hotel := &models.Hotel{
		MerchantID:  merchantID,
		NameZh:      req.NameZh,
		NameEn:      req.NameEn,
		Address:     req.Address,
		StarRating:  req.StarRating,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
		Description: req.Description,
		Status:      models.HotelStatusPending,
	}
	if req.OpeningDate != nil {
		opening, _ := time.Parse(handler.DateFormat, *req.OpeningDate)
		hotel.OpeningDate = &opening
	}
	s.buildChildren(hotel, req)

	// 酒店与全部子资源在一个事务内落库
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(hotel).Error; err != nil {
			return err
		}
		for _, tagID := range req.TagIDs {
			if err := tx.Create(&models.HotelTag{HotelID: hotel.ID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("商户提交酒店", logger.MerchantID(merchantID), logger.HotelID(hotel.ID))

	return hotel, nil
}

// UpdateHotel 商户编辑酒店，整体替换子资源并重置为待审核
func (s *HotelService) UpdateHotel(ctx context.Context, merchantID, hotelID int64, req *SaveHotelRequest) (*models.Hotel, error) {
	hotel, err := s.getOwnedHotel(ctx, merchantID, hotelID)
	if err != nil {
		return nil, err
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		tags, err := s.tagRepo.GetByIDs(ctx, req.TagIDs)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if len(tags) != len(req.TagIDs) {
			return nil, errors.ErrTagNotFound
		}
	}

	hotel.NameZh = req.NameZh
	hotel.NameEn = req.NameEn
	hotel.Address = req.Address
	hotel.StarRating = req.StarRating
	hotel.Longitude = req.Longitude
	hotel.Latitude = req.Latitude
	hotel.Description = req.Description
	if req.OpeningDate != nil {
		opening, _ := time.Parse(handler.DateFormat, *req.OpeningDate)
		hotel.OpeningDate = &opening
	} else {
		hotel.OpeningDate = nil
	}
	// 编辑后需要重新审核
	hotel.Status = models.HotelStatusPending
	hotel.RejectionReason = nil

	fresh := &models.Hotel{}
	*fresh = *hotel
	s.buildChildren(fresh, req)

	// 删旧建新，整体替换子资源
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.Room{}, &models.HotelImage{}, &models.Facility{},
			&models.Promotion{}, &models.NearbyAttraction{},
		} {
			if err := tx.Where("hotel_id = ?", hotel.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.HotelTag{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Tags").Save(fresh).Error; err != nil {
			return err
		}
		for _, tagID := range req.TagIDs {
			if err := tx.Create(&models.HotelTag{HotelID: hotel.ID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("商户编辑酒店", logger.MerchantID(merchantID), logger.HotelID(hotel.ID))

	return fresh, nil
}

// DeleteHotel 商户删除酒店，连带删除全部子资源
func (s *HotelService) DeleteHotel(ctx context.Context, merchantID, hotelID int64) error {
	hotel, err := s.getOwnedHotel(ctx, merchantID, hotelID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.Room{}, &models.HotelImage{}, &models.Facility{},
			&models.Promotion{}, &models.NearbyAttraction{},
		} {
			if err := tx.Where("hotel_id = ?", hotel.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.HotelTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Hotel{}, hotel.ID).Error
	})
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("商户删除酒店", logger.MerchantID(merchantID), logger.HotelID(hotelID))

	return nil
}

// GetHotel 商户查看自己的酒店详情（含未上架状态）
func (s *HotelService) GetHotel(ctx context.Context, merchantID, hotelID int64) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByIDWithDetails(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.MerchantID != merchantID {
		return nil, errors.ErrHotelNotOwned
	}
	return hotel, nil
}

// ListMyHotels 商户查看自己的酒店列表
func (s *HotelService) ListMyHotels(ctx context.Context, merchantID int64, page, pageSize int, status string) ([]*models.Hotel, int64, error) {
	offset := (page - 1) * pageSize
	hotels, total, err := s.hotelRepo.ListByMerchant(ctx, merchantID, offset, pageSize, status)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return hotels, total, nil
}

// getOwnedHotel 获取酒店并校验归属
func (s *HotelService) getOwnedHotel(ctx context.Context, merchantID, hotelID int64) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.MerchantID != merchantID {
		return nil, errors.ErrHotelNotOwned
	}
	return hotel, nil
}
