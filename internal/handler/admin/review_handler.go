// Package admin 提供管理端的 HTTP Handler
package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	hotelService "github.com/BoringLink/yisu-hotel-backend/internal/service/hotel"
)

// ReviewHandler 酒店审核处理器
type ReviewHandler struct {
	reviewService *hotelService.ReviewService
}

// NewReviewHandler 创建审核处理器
func NewReviewHandler(reviewSvc *hotelService.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewSvc,
	}
}

// reviewContext 从请求提取审核上下文
func reviewContext(c *gin.Context, adminID int64) *hotelService.ReviewContext {
	return &hotelService.ReviewContext{
		AdminID:   adminID,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// ListPendingHotels 获取待审核酒店
// @Summary 获取待审核酒店列表（按提交时间先后）
// @Tags 酒店审核
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.Hotel}
// @Router /api/admin/hotels/pending [get]
func (h *ReviewHandler) ListPendingHotels(c *gin.Context) {
	p := handler.BindPagination(c)
	hotels, total, err := h.reviewService.ListPending(c.Request.Context(), p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, hotels, total, p.Page, p.PageSize)
}

// ListHotels 获取酒店列表
// @Summary 获取酒店列表（全部状态）
// @Tags 酒店审核
// @Produce json
// @Security BearerAuth
// @Param status query string false "审核状态" Enums(pending, approved, rejected, offline)
// @Param name query string false "酒店名称"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.Hotel}
// @Router /api/admin/hotels [get]
func (h *ReviewHandler) ListHotels(c *gin.Context) {
	p := handler.BindPagination(c)
	hotels, total, err := h.reviewService.ListHotels(c.Request.Context(), p.Page, p.PageSize,
		c.Query("status"), c.Query("name"))
	handler.MustSucceedPage(c, err, hotels, total, p.Page, p.PageSize)
}

// GetHotel 获取酒店详情
// @Summary 获取酒店详情（管理端）
// @Tags 酒店审核
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/admin/hotels/{id} [get]
func (h *ReviewHandler) GetHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	hotel, err := h.reviewService.GetHotel(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, hotel)
}

// ApproveHotel 审核通过
// @Summary 审核通过酒店
// @Tags 酒店审核
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/approve [post]
func (h *ReviewHandler) ApproveHotel(c *gin.Context) {
	adminID, hotelID, ok := handler.RequireAdminAndParseID(c, "酒店")
	if !ok {
		return
	}

	err := h.reviewService.Approve(c.Request.Context(), hotelID, reviewContext(c, adminID))
	handler.MustSucceedWithMessage(c, err, "审核通过", nil)
}

// RejectHotel 审核驳回
// @Summary 驳回酒店（须填写驳回原因）
// @Tags 酒店审核
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/reject [post]
func (h *ReviewHandler) RejectHotel(c *gin.Context) {
	adminID, hotelID, ok := handler.RequireAdminAndParseID(c, "酒店")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "驳回原因不能为空")
		return
	}

	err := h.reviewService.Reject(c.Request.Context(), hotelID, req.Reason, reviewContext(c, adminID))
	handler.MustSucceedWithMessage(c, err, "已驳回", nil)
}

// OfflineHotel 下架酒店
// @Summary 下架酒店
// @Tags 酒店审核
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/offline [post]
func (h *ReviewHandler) OfflineHotel(c *gin.Context) {
	adminID, hotelID, ok := handler.RequireAdminAndParseID(c, "酒店")
	if !ok {
		return
	}

	err := h.reviewService.Offline(c.Request.Context(), hotelID, reviewContext(c, adminID))
	handler.MustSucceedWithMessage(c, err, "已下架", nil)
}

// OnlineHotel 重新上架酒店
// @Summary 重新上架酒店
// @Tags 酒店审核
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/online [post]
func (h *ReviewHandler) OnlineHotel(c *gin.Context) {
	adminID, hotelID, ok := handler.RequireAdminAndParseID(c, "酒店")
	if !ok {
		return
	}

	err := h.reviewService.Online(c.Request.Context(), hotelID, reviewContext(c, adminID))
	handler.MustSucceedWithMessage(c, err, "已上架", nil)
}

// RegisterRoutes 注册审核路由（需管理员认证）
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", h.ListHotels)
		hotels.GET("/pending", h.ListPendingHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.POST("/:id/approve", h.ApproveHotel)
		hotels.POST("/:id/reject", h.RejectHotel)
		hotels.POST("/:id/offline", h.OfflineHotel)
		hotels.POST("/:id/online", h.OnlineHotel)
	}
}
