package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// LogHandler 操作日志处理器
type LogHandler struct {
	logRepo *repository.OperationLogRepository
}

// NewLogHandler 创建操作日志处理器
func NewLogHandler(logRepo *repository.OperationLogRepository) *LogHandler {
	return &LogHandler{
		logRepo: logRepo,
	}
}

// ListLogs 获取操作日志
// @Summary 获取操作日志列表
// @Tags 操作日志
// @Produce json
// @Security BearerAuth
// @Param admin_id query int false "管理员ID"
// @Param module query string false "模块"
// @Param action query string false "动作"
// @Param target_type query string false "对象类型"
// @Param target_id query int false "对象ID"
// @Param start_time query string false "开始时间"
// @Param end_time query string false "结束时间"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.OperationLog}
// @Router /api/admin/logs/operation [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	filters := map[string]interface{}{
		"module":      c.Query("module"),
		"action":      c.Query("action"),
		"target_type": c.Query("target_type"),
		"ip":          c.Query("ip"),
	}
	if adminID, ok := handler.ParseQueryID(c, "admin_id", "管理员"); !ok {
		return
	} else if adminID != nil {
		filters["admin_id"] = *adminID
	}
	if targetID, ok := handler.ParseQueryID(c, "target_id", "对象"); !ok {
		return
	} else if targetID != nil {
		filters["target_id"] = *targetID
	}
	if startTime, ok := handler.ParseQueryDate(c, "start_time", "开始时间格式错误"); !ok {
		return
	} else if startTime != nil {
		filters["start_time"] = *startTime
	}
	if endTime, ok := handler.ParseQueryDate(c, "end_time", "结束时间格式错误"); !ok {
		return
	} else if endTime != nil {
		filters["end_time"] = *endTime
	}

	p := handler.BindPagination(c)
	logs, total, err := h.logRepo.List(c.Request.Context(), p.GetOffset(), p.GetLimit(), filters)
	handler.MustSucceedPage(c, err, logs, total, p.Page, p.PageSize)
}

// ListTargetLogs 获取指定对象的操作日志
// @Summary 获取指定对象的操作日志
// @Tags 操作日志
// @Produce json
// @Security BearerAuth
// @Param target_type path string true "对象类型"
// @Param target_id path int true "对象ID"
// @Success 200 {object} response.Response{data=[]models.OperationLog}
// @Router /api/admin/logs/operation/{target_type}/{target_id} [get]
func (h *LogHandler) ListTargetLogs(c *gin.Context) {
	targetType := c.Param("target_type")
	targetID, ok := handler.ParseParamID(c, "target_id", "对象")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	logs, total, err := h.logRepo.ListByTarget(c.Request.Context(), targetType, targetID, p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, logs, total, p.Page, p.PageSize)
}

// RegisterRoutes 注册操作日志路由（需管理员认证）
func (h *LogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/logs")
	{
		logs.GET("/operation", h.ListLogs)
		logs.GET("/operation/:target_type/:target_id", h.ListTargetLogs)
	}
}
