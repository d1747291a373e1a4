// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/logger"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// 操作日志保留期
const operationLogRetention = 90 * 24 * time.Hour

// TaskHandler 任务处理器
type TaskHandler struct {
	db      *gorm.DB
	logRepo *repository.OperationLogRepository
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(db *gorm.DB, logRepo *repository.OperationLogRepository) *TaskHandler {
	return &TaskHandler{
		db:      db,
		logRepo: logRepo,
	}
}

// CleanupOperationLogs 清理过期的操作日志
func (h *TaskHandler) CleanupOperationLogs(ctx context.Context) error {
	before := time.Now().Add(-operationLogRetention)

	deleted, err := h.logRepo.DeleteBefore(ctx, before)
	if err != nil {
		return err
	}

	if deleted > 0 {
		logger.Info("Expired operation logs deleted", zap.Int64("count", deleted))
	}

	return nil
}

// CleanupExpiredPromotions 清理已结束的促销活动
func (h *TaskHandler) CleanupExpiredPromotions(ctx context.Context) error {
	result := h.db.WithContext(ctx).
		Where("end_date < ?", time.Now()).
		Delete(&models.Promotion{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info("Expired promotions deleted", zap.Int64("count", result.RowsAffected))
	}

	return nil
}

// SetupTasks 设置所有任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler) {
	// 每天清理过期操作日志
	scheduler.AddTask("CleanupOperationLogs", 24*time.Hour, handler.CleanupOperationLogs)

	// 每小时清理已结束的促销
	scheduler.AddTask("CleanupExpiredPromotions", 1*time.Hour, handler.CleanupExpiredPromotions)
}
