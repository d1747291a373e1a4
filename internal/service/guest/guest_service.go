// Package guest 提供入住人登记服务
package guest

import (
	"context"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/utils"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// GuestService 入住人服务
type GuestService struct {
	db              *gorm.DB
	guestRepo       *repository.GuestRepository
	reservationRepo *repository.ReservationRepository
	hotelRepo       *repository.HotelRepository
	roomRepo        *repository.RoomRepository
}

// NewGuestService 创建入住人服务
func NewGuestService(
	db *gorm.DB,
	guestRepo *repository.GuestRepository,
	reservationRepo *repository.ReservationRepository,
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
) *GuestService {
	return &GuestService{
		db:              db,
		guestRepo:       guestRepo,
		reservationRepo: reservationRepo,
		hotelRepo:       hotelRepo,
		roomRepo:        roomRepo,
	}
}

// AttachGuestRequest 为预订补录入住人请求
type AttachGuestRequest struct {
	Name     string  `json:"name" binding:"required"`
	IDType   string  `json:"id_type" binding:"required,oneof=id_card passport other"`
	IDNumber string  `json:"id_number" binding:"required"`
	Phone    *string `json:"phone"`
}

// UpdateGuestRequest 更新入住人信息请求
type UpdateGuestRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// Attach 为预订补录入住人
// 证件类型+证件号相同的入住人复用同一档案
func (s *GuestService) Attach(ctx context.Context, merchantID, reservationID int64, req *AttachGuestRequest) (*models.Guest, error) {
	if req.IDType == models.GuestIDTypeIDCard && !utils.ValidateIDCard(req.IDNumber) {
		return nil, errors.ErrGuestIDInvalid
	}
	if req.Phone != nil && !utils.ValidatePhone(*req.Phone) {
		return nil, errors.ErrInvalidPhone
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.checkOwnership(ctx, merchantID, reservation.HotelID); err != nil {
		return nil, err
	}

	var guest *models.Guest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := s.guestRepo.FindOrCreateInTx(tx, &models.Guest{
			Name:     req.Name,
			IDType:   req.IDType,
			IDNumber: req.IDNumber,
			Phone:    req.Phone,
		})
		if err != nil {
			return err
		}
		guest = g

		var linked int64
		if err := tx.Model(&models.ReservationGuest{}).
			Where("reservation_id = ? AND guest_id = ?", reservationID, g.ID).
			Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return nil
		}
		return tx.Create(&models.ReservationGuest{
			ReservationID: reservationID,
			GuestID:       g.ID,
		}).Error
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return guest, nil
}

// Update 更新入住人姓名或联系电话
func (s *GuestService) Update(ctx context.Context, guestID int64, req *UpdateGuestRequest) (*models.Guest, error) {
	if req.Phone != nil && !utils.ValidatePhone(*req.Phone) {
		return nil, errors.ErrInvalidPhone
	}

	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Name != nil {
		guest.Name = *req.Name
	}
	if req.Phone != nil {
		guest.Phone = req.Phone
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return guest, nil
}

// GetByID 获取入住人档案
func (s *GuestService) GetByID(ctx context.Context, guestID int64) (*models.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrGuestNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return guest, nil
}

// ListByReservation 获取预订的入住人列表
func (s *GuestService) ListByReservation(ctx context.Context, merchantID, reservationID int64) ([]*models.Guest, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.checkOwnership(ctx, merchantID, reservation.HotelID); err != nil {
		return nil, err
	}

	guests, err := s.guestRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return guests, nil
}

// ListByHotel 获取酒店历史入住人列表（按姓名/证件号/电话过滤）
func (s *GuestService) ListByHotel(ctx context.Context, merchantID, hotelID int64, page, pageSize int, name, idNumber, phone string) ([]*models.Guest, int64, error) {
	if err := s.checkOwnership(ctx, merchantID, hotelID); err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{
		"hotel_id": hotelID,
	}
	if name != "" {
		filters["name"] = name
	}
	if idNumber != "" {
		filters["id_number"] = idNumber
	}
	if phone != "" {
		filters["phone"] = phone
	}

	offset := (page - 1) * pageSize
	guests, total, err := s.guestRepo.List(ctx, offset, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return guests, total, nil
}

// ListByRoom 获取房型历史入住人列表
func (s *GuestService) ListByRoom(ctx context.Context, merchantID, roomID int64, page, pageSize int) ([]*models.Guest, int64, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, errors.ErrRoomNotFound
		}
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.checkOwnership(ctx, merchantID, room.HotelID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	guests, total, err := s.guestRepo.List(ctx, offset, pageSize, map[string]interface{}{
		"room_id": roomID,
	})
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return guests, total, nil
}

// ListCurrentByHotel 获取酒店当前在住的入住人名单
func (s *GuestService) ListCurrentByHotel(ctx context.Context, merchantID, hotelID int64, page, pageSize int) ([]*models.Guest, int64, error) {
	if err := s.checkOwnership(ctx, merchantID, hotelID); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	guests, total, err := s.guestRepo.ListInHouseByHotel(ctx, hotelID, offset, pageSize)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return guests, total, nil
}

// checkOwnership 校验酒店归属于当前商户
func (s *GuestService) checkOwnership(ctx context.Context, merchantID, hotelID int64) error {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if hotel.MerchantID != merchantID {
		return errors.ErrHotelNotOwned
	}
	return nil
}
