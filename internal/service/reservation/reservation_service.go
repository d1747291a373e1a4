// Package reservation 提供预订服务
package reservation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/logger"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/metrics"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/utils"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// 预订号前缀
const reservationNoPrefix = "YS"

// ReservationService 预订服务
type ReservationService struct {
	db              *gorm.DB
	reservationRepo *repository.ReservationRepository
	roomRepo        *repository.RoomRepository
	hotelRepo       *repository.HotelRepository
	guestRepo       *repository.GuestRepository
}

// NewReservationService 创建预订服务
func NewReservationService(
	db *gorm.DB,
	reservationRepo *repository.ReservationRepository,
	roomRepo *repository.RoomRepository,
	hotelRepo *repository.HotelRepository,
	guestRepo *repository.GuestRepository,
) *ReservationService {
	return &ReservationService{
		db:              db,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		hotelRepo:       hotelRepo,
		guestRepo:       guestRepo,
	}
}

// GuestInput 入住人输入
type GuestInput struct {
	Name     string  `json:"name" binding:"required"`
	IDType   string  `json:"id_type" binding:"required,oneof=id_card passport other"`
	IDNumber string  `json:"id_number" binding:"required"`
	Phone    *string `json:"phone"`
}

// CreateReservationRequest 创建预订请求
type CreateReservationRequest struct {
	HotelID      int64        `json:"hotel_id" binding:"required"`
	RoomID       int64        `json:"room_id" binding:"required"`
	CheckInDate  string       `json:"check_in_date" binding:"required"`
	CheckOutDate string       `json:"check_out_date" binding:"required"`
	ContactName  string       `json:"contact_name" binding:"required"`
	ContactPhone string       `json:"contact_phone" binding:"required"`
	ContactEmail *string      `json:"contact_email"`
	Remark       *string      `json:"remark"`
	Guests       []GuestInput `json:"guests"`
}

// validateGuestInput 校验入住人证件与联系方式
// 仅身份证做格式校验，护照等证件格式各国不一
func validateGuestInput(in *GuestInput) error {
	if in.IDType == models.GuestIDTypeIDCard && !utils.ValidateIDCard(in.IDNumber) {
		return errors.ErrGuestIDInvalid
	}
	if in.Phone != nil && !utils.ValidatePhone(*in.Phone) {
		return errors.ErrInvalidPhone
	}
	return nil
}

// Create 创建预订
// 同一房型的扣减在事务内加行锁，避免并发超订
func (s *ReservationService) Create(ctx context.Context, req *CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut, err := handler.ParseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if !utils.ValidatePhone(req.ContactPhone) {
		return nil, errors.ErrInvalidPhone
	}
	for _, in := range req.Guests {
		if err := validateGuestInput(&in); err != nil {
			return nil, err
		}
	}

	hotel, err := s.hotelRepo.GetByID(ctx, req.HotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.Status != models.HotelStatusApproved {
		return nil, errors.ErrHotelNotApproved
	}

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if room.HotelID != hotel.ID {
		return nil, errors.ErrRoomNotInHotel
	}

	nights := utils.CalculateNights(checkIn, checkOut)
	reservation := &models.Reservation{
		ReservationNo: utils.GenerateReservationNo(reservationNoPrefix),
		HotelID:       hotel.ID,
		RoomID:        room.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		TotalPrice:    room.Price * float64(nights),
		Status:        models.ReservationStatusConfirmed,
		Remark:        req.Remark,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 锁定房型行，占用统计与写入在同一事务内完成
		locked, err := s.roomRepo.GetForUpdate(tx, room.ID)
		if err != nil {
			return err
		}

		occupied, err := s.reservationRepo.CountOverlapping(tx, room.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if occupied >= int64(locked.Quantity) {
			return errors.ErrNoAvailability
		}

		if err := s.reservationRepo.CreateInTx(tx, reservation); err != nil {
			return err
		}

		for _, in := range req.Guests {
			guest, err := s.guestRepo.FindOrCreateInTx(tx, &models.Guest{
				Name:     in.Name,
				IDType:   in.IDType,
				IDNumber: in.IDNumber,
				Phone:    in.Phone,
			})
			if err != nil {
				return err
			}
			link := &models.ReservationGuest{
				ReservationID: reservation.ID,
				GuestID:       guest.ID,
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			metrics.RecordReservationGlobal("create", "rejected")
			return nil, appErr
		}
		metrics.RecordReservationGlobal("create", "error")
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordReservationGlobal("create", "success")
	logger.Info("创建预订成功",
		logger.ReservationNo(reservation.ReservationNo),
		logger.HotelID(hotel.ID),
		logger.RoomID(room.ID),
	)

	return reservation, nil
}

// CheckAvailability 查询指定日期区间的房型剩余可订数量
func (s *ReservationService) CheckAvailability(ctx context.Context, roomID int64, checkInStr, checkOutStr string) (int64, error) {
	checkIn, checkOut, err := handler.ParseStayDates(checkInStr, checkOutStr)
	if err != nil {
		return 0, err
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errors.ErrRoomNotFound
		}
		return 0, errors.ErrDatabaseError.WithError(err)
	}

	occupied, err := s.reservationRepo.CountOverlappingCtx(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}

	remaining := int64(room.Quantity) - occupied
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// CheckIn 办理入住，confirmed -> check_in
func (s *ReservationService) CheckIn(ctx context.Context, merchantID, reservationID int64) (*models.Reservation, error) {
	reservation, err := s.getOwnedReservation(ctx, merchantID, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != models.ReservationStatusConfirmed {
		metrics.RecordReservationGlobal("check_in", "rejected")
		return nil, errors.NewInvalidTransition(errors.ErrCheckInNotAllowed, reservation.Status, models.ReservationStatusCheckIn)
	}

	now := time.Now()
	ok, err := s.reservationRepo.MarkCheckedIn(ctx, reservationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		// 状态被并发流转，以库内最新状态报错
		metrics.RecordReservationGlobal("check_in", "rejected")
		return nil, s.staleTransitionError(ctx, reservationID, errors.ErrCheckInNotAllowed, models.ReservationStatusCheckIn)
	}

	reservation.Status = models.ReservationStatusCheckIn
	reservation.CheckedInAt = &now

	metrics.RecordReservationGlobal("check_in", "success")
	logger.Info("办理入住", logger.ReservationNo(reservation.ReservationNo))

	return reservation, nil
}

// CheckOut 办理退房，check_in -> check_out
func (s *ReservationService) CheckOut(ctx context.Context, merchantID, reservationID int64) (*models.Reservation, error) {
	reservation, err := s.getOwnedReservation(ctx, merchantID, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != models.ReservationStatusCheckIn {
		metrics.RecordReservationGlobal("check_out", "rejected")
		return nil, errors.NewInvalidTransition(errors.ErrCheckOutNotAllowed, reservation.Status, models.ReservationStatusCheckOut)
	}

	now := time.Now()
	ok, err := s.reservationRepo.MarkCheckedOut(ctx, reservationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		metrics.RecordReservationGlobal("check_out", "rejected")
		return nil, s.staleTransitionError(ctx, reservationID, errors.ErrCheckOutNotAllowed, models.ReservationStatusCheckOut)
	}

	reservation.Status = models.ReservationStatusCheckOut
	reservation.CheckedOutAt = &now

	metrics.RecordReservationGlobal("check_out", "success")
	logger.Info("办理退房", logger.ReservationNo(reservation.ReservationNo))

	return reservation, nil
}

// Cancel 取消预订，confirmed -> cancelled，释放占用
func (s *ReservationService) Cancel(ctx context.Context, merchantID, reservationID int64) (*models.Reservation, error) {
	reservation, err := s.getOwnedReservation(ctx, merchantID, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != models.ReservationStatusConfirmed {
		metrics.RecordReservationGlobal("cancel", "rejected")
		return nil, errors.NewInvalidTransition(errors.ErrCancelNotAllowed, reservation.Status, models.ReservationStatusCancelled)
	}

	now := time.Now()
	ok, err := s.reservationRepo.MarkCancelled(ctx, reservationID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		metrics.RecordReservationGlobal("cancel", "rejected")
		return nil, s.staleTransitionError(ctx, reservationID, errors.ErrCancelNotAllowed, models.ReservationStatusCancelled)
	}

	reservation.Status = models.ReservationStatusCancelled
	reservation.CancelledAt = &now

	metrics.RecordReservationGlobal("cancel", "success")
	logger.Info("取消预订", logger.ReservationNo(reservation.ReservationNo))

	return reservation, nil
}

// GetByID 获取预订详情（含酒店、房型、入住人）
func (s *ReservationService) GetByID(ctx context.Context, merchantID, reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByIDWithDetails(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.checkOwnership(ctx, merchantID, reservation.HotelID); err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetByNo 根据预订号获取预订详情
func (s *ReservationService) GetByNo(ctx context.Context, reservationNo string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByReservationNo(ctx, reservationNo)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservation, nil
}

// ListFilter 预订列表过滤条件
type ListFilter struct {
	HotelID       int64
	RoomID        int64
	Status        string
	ReservationNo string
	ContactPhone  string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ListByHotel 获取酒店的预订列表（商户侧，校验归属）
func (s *ReservationService) ListByHotel(ctx context.Context, merchantID int64, filter ListFilter, page, pageSize int) ([]*models.Reservation, int64, error) {
	if err := s.checkOwnership(ctx, merchantID, filter.HotelID); err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{
		"hotel_id": filter.HotelID,
	}
	if filter.RoomID > 0 {
		filters["room_id"] = filter.RoomID
	}
	if filter.Status != "" {
		filters["status"] = filter.Status
	}
	if filter.ReservationNo != "" {
		filters["reservation_no"] = filter.ReservationNo
	}
	if filter.ContactPhone != "" {
		filters["contact_phone"] = filter.ContactPhone
	}
	if filter.StartDate != nil {
		filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		filters["end_date"] = *filter.EndDate
	}

	offset := (page - 1) * pageSize
	reservations, total, err := s.reservationRepo.List(ctx, offset, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return reservations, total, nil
}

// ListInHouse 获取酒店当前在住的预订列表
func (s *ReservationService) ListInHouse(ctx context.Context, merchantID, hotelID int64, page, pageSize int) ([]*models.Reservation, int64, error) {
	if err := s.checkOwnership(ctx, merchantID, hotelID); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	reservations, total, err := s.reservationRepo.ListInHouseByHotel(ctx, hotelID, offset, pageSize)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return reservations, total, nil
}

// HotelStats 酒店预订统计（商户工作台）
type HotelStats struct {
	Confirmed  int64 `json:"confirmed"`
	InHouse    int64 `json:"in_house"`
	CheckedOut int64 `json:"checked_out"`
	TodayNew   int64 `json:"today_new"`
}

// Stats 统计酒店各状态预订数量及今日新增
func (s *ReservationService) Stats(ctx context.Context, merchantID, hotelID int64) (*HotelStats, error) {
	if err := s.checkOwnership(ctx, merchantID, hotelID); err != nil {
		return nil, err
	}

	stats := &HotelStats{}
	counts := []struct {
		status string
		dest   *int64
	}{
		{models.ReservationStatusConfirmed, &stats.Confirmed},
		{models.ReservationStatusCheckIn, &stats.InHouse},
		{models.ReservationStatusCheckOut, &stats.CheckedOut},
	}
	for _, c := range counts {
		n, err := s.reservationRepo.CountByHotelAndStatus(ctx, hotelID, c.status)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		*c.dest = n
	}

	todayNew, err := s.reservationRepo.CountTodayByHotel(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	stats.TodayNew = todayNew

	return stats, nil
}

// ListOccupancy 查询房型在日期区间内的占用明细（商户排房视图）
// 返回与区间重叠的未取消预订
func (s *ReservationService) ListOccupancy(ctx context.Context, merchantID, roomID int64, checkInStr, checkOutStr string) ([]*models.Reservation, error) {
	checkIn, checkOut, err := handler.ParseStayDates(checkInStr, checkOutStr)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if err := s.checkOwnership(ctx, merchantID, room.HotelID); err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.ListOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return reservations, nil
}

// staleTransitionError 条件更新未生效时，读取库内最新状态构造流转错误
func (s *ReservationService) staleTransitionError(ctx context.Context, reservationID int64, base *errors.AppError, target string) error {
	current, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return errors.NewInvalidTransition(base, current.Status, target)
}

// getOwnedReservation 获取预订并校验酒店归属
func (s *ReservationService) getOwnedReservation(ctx context.Context, merchantID, reservationID int64) (*models.Reservation, error) {
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
	return reservation, nil
}

// checkOwnership 校验酒店归属于当前商户
func (s *ReservationService) checkOwnership(ctx context.Context, merchantID, hotelID int64) error {
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
