package hotel

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/cache"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/logger"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/metrics"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/utils"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// ReviewService 管理端酒店审核服务
type ReviewService struct {
	db        *gorm.DB
	hotelRepo *repository.HotelRepository
	logRepo   *repository.OperationLogRepository
	rdb       *redis.Client
}

// NewReviewService 创建审核服务
// rdb 为 nil 时跳过缓存失效
func NewReviewService(
	db *gorm.DB,
	hotelRepo *repository.HotelRepository,
	logRepo *repository.OperationLogRepository,
	rdb *redis.Client,
) *ReviewService {
	return &ReviewService{
		db:        db,
		hotelRepo: hotelRepo,
		logRepo:   logRepo,
		rdb:       rdb,
	}
}

// ReviewContext 审核操作上下文（用于记录操作日志）
type ReviewContext struct {
	AdminID   int64
	IP        string
	UserAgent string
}

// ListPending 获取待审核酒店列表，按提交时间正序
func (s *ReviewService) ListPending(ctx context.Context, page, pageSize int) ([]*models.Hotel, int64, error) {
	offset := (page - 1) * pageSize
	hotels, total, err := s.hotelRepo.ListPending(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return hotels, total, nil
}

// ListHotels 管理端酒店列表（可按状态、名称过滤）
func (s *ReviewService) ListHotels(ctx context.Context, page, pageSize int, status, name string) ([]*models.Hotel, int64, error) {
	offset := (page - 1) * pageSize
	filters := map[string]interface{}{}
	if status != "" {
		filters["status"] = status
	}
	if name != "" {
		filters["name"] = name
	}
	hotels, total, err := s.hotelRepo.List(ctx, offset, pageSize, filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return hotels, total, nil
}

// GetHotel 管理端查看酒店详情（不限状态）
func (s *ReviewService) GetHotel(ctx context.Context, hotelID int64) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByIDWithDetails(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return hotel, nil
}

// Approve 审核通过，任意非 approved 状态均可通过
// 商户编辑后重新提交会回到 pending，因此不限定来源状态
func (s *ReviewService) Approve(ctx context.Context, hotelID int64, rc *ReviewContext) error {
	allowed := func(current string) bool { return current != models.HotelStatusApproved }
	return s.transition(ctx, hotelID, models.HotelStatusApproved, "approve", allowed, nil, rc)
}

// Reject 审核驳回，任意状态均可驳回，驳回原因必填
func (s *ReviewService) Reject(ctx context.Context, hotelID int64, reason string, rc *ReviewContext) error {
	if reason == "" {
		return errors.ErrRejectReasonEmpty
	}
	extra := map[string]interface{}{"rejection_reason": reason}
	return s.transition(ctx, hotelID, models.HotelStatusRejected, "reject", nil, extra, rc)
}

// Offline 下架，approved -> offline
func (s *ReviewService) Offline(ctx context.Context, hotelID int64, rc *ReviewContext) error {
	allowed := func(current string) bool { return current == models.HotelStatusApproved }
	return s.transition(ctx, hotelID, models.HotelStatusOffline, "offline", allowed, nil, rc)
}

// Online 重新上架，offline -> approved
func (s *ReviewService) Online(ctx context.Context, hotelID int64, rc *ReviewContext) error {
	allowed := func(current string) bool { return current == models.HotelStatusOffline }
	return s.transition(ctx, hotelID, models.HotelStatusApproved, "online", allowed, nil, rc)
}

// transition 执行状态流转并记录操作日志
// allowed 为 nil 时任意当前状态均可流转
func (s *ReviewService) transition(ctx context.Context, hotelID int64, to, action string, allowed func(current string) bool, extra map[string]interface{}, rc *ReviewContext) error {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if allowed != nil && !allowed(hotel.Status) {
		return errors.NewInvalidTransition(errors.ErrHotelStatusInvalid, hotel.Status, to)
	}

	fields := map[string]interface{}{"status": to}
	for k, v := range extra {
		fields[k] = v
	}
	// 通过审核时清除历史驳回原因
	if to == models.HotelStatusApproved {
		fields["rejection_reason"] = nil
	}

	if err := s.hotelRepo.UpdateFields(ctx, hotelID, fields); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	s.invalidateCache(ctx, hotelID)
	s.writeLog(ctx, hotelID, action, hotel.Status, to, rc)
	metrics.RecordReviewActionGlobal(action)

	logger.Info("酒店状态流转",
		logger.HotelID(hotelID),
		logger.Action(action),
	)

	return nil
}

// invalidateCache 使酒店详情缓存失效
func (s *ReviewService) invalidateCache(ctx context.Context, hotelID int64) {
	if s.rdb == nil {
		return
	}
	key := cache.BuildKey(cache.KeyPrefixHotel, formatID(hotelID))
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logger.Warn("删除酒店缓存失败", logger.HotelID(hotelID))
	}
}

// writeLog 记录审核操作日志，失败不影响主流程
func (s *ReviewService) writeLog(ctx context.Context, hotelID int64, action, before, after string, rc *ReviewContext) {
	if rc == nil {
		return
	}
	log := &models.OperationLog{
		AdminID:    rc.AdminID,
		Module:     "hotel",
		Action:     action,
		TargetType: utils.StringPtr("hotel"),
		TargetID:   &hotelID,
		BeforeData: models.JSON{"status": before},
		AfterData:  models.JSON{"status": after},
		IP:         rc.IP,
	}
	if rc.UserAgent != "" {
		log.UserAgent = &rc.UserAgent
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		logger.Warn("记录操作日志失败", logger.AdminID(rc.AdminID), logger.Action(action))
	}
}
