// Package hotel 提供商户侧酒店管理的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	hotelService "github.com/BoringLink/yisu-hotel-backend/internal/service/hotel"
)

// Handler 商户侧酒店处理器
type Handler struct {
	hotelService *hotelService.HotelService
}

// NewHandler 创建酒店处理器
func NewHandler(hotelSvc *hotelService.HotelService) *Handler {
	return &Handler{
		hotelService: hotelSvc,
	}
}

// CreateHotel 提交酒店
// @Summary 提交酒店（待审核）
// @Tags 商户酒店
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body hotelService.SaveHotelRequest true "酒店信息"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/merchant/hotels [post]
func (h *Handler) CreateHotel(c *gin.Context) {
	merchantID, ok := handler.RequireMerchantID(c)
	if !ok {
		return
	}

	var req hotelService.SaveHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), merchantID, &req)
	handler.MustSucceed(c, err, hotel)
}

// UpdateHotel 编辑酒店
// @Summary 编辑酒店（重置为待审核）
// @Tags 商户酒店
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param request body hotelService.SaveHotelRequest true "酒店信息"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/merchant/hotels/{id} [put]
func (h *Handler) UpdateHotel(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	var req hotelService.SaveHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), merchantID, hotelID, &req)
	handler.MustSucceed(c, err, hotel)
}

// DeleteHotel 删除酒店
// @Summary 删除酒店
// @Tags 商户酒店
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/hotels/{id} [delete]
func (h *Handler) DeleteHotel(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	err := h.hotelService.DeleteHotel(c.Request.Context(), merchantID, hotelID)
	handler.MustSucceedWithMessage(c, err, "删除成功", nil)
}

// GetHotel 获取酒店详情
// @Summary 获取自己的酒店详情
// @Tags 商户酒店
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/merchant/hotels/{id} [get]
func (h *Handler) GetHotel(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetHotel(c.Request.Context(), merchantID, hotelID)
	handler.MustSucceed(c, err, hotel)
}

// ListMyHotels 获取自己的酒店列表
// @Summary 获取自己的酒店列表
// @Tags 商户酒店
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "审核状态" Enums(pending, approved, rejected, offline)
// @Success 200 {object} response.Response{data=[]models.Hotel}
// @Router /api/v1/merchant/hotels [get]
func (h *Handler) ListMyHotels(c *gin.Context) {
	merchantID, ok := handler.RequireMerchantID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	status := c.Query("status")

	hotels, total, err := h.hotelService.ListMyHotels(c.Request.Context(), merchantID, p.Page, p.PageSize, status)
	handler.MustSucceedPage(c, err, hotels, total, p.Page, p.PageSize)
}

// RegisterRoutes 注册商户酒店路由（需商户认证）
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/merchant/hotels")
	{
		hotels.POST("", h.CreateHotel)
		hotels.GET("", h.ListMyHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.PUT("/:id", h.UpdateHotel)
		hotels.DELETE("/:id", h.DeleteHotel)
	}
}
