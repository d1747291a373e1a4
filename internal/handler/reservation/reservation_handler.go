// Package reservation 提供预订相关的 HTTP Handler
package reservation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/qrcode"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	reservationService "github.com/BoringLink/yisu-hotel-backend/internal/service/reservation"
)

// Handler 预订处理器
type Handler struct {
	reservationService *reservationService.ReservationService
	qrGenerator        *qrcode.Generator
}

// NewHandler 创建预订处理器
func NewHandler(reservationSvc *reservationService.ReservationService) *Handler {
	return &Handler{
		reservationService: reservationSvc,
		qrGenerator:        qrcode.NewGenerator(qrcode.WithSize(256)),
	}
}

// CreateReservation 创建预订
// @Summary 创建预订（客人无需登录）
// @Tags 预订
// @Accept json
// @Produce json
// @Param request body reservationService.CreateReservationRequest true "预订信息"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	var req reservationService.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), &req)
	handler.MustSucceed(c, err, reservation)
}

// GetReservationByNo 按预订号查询
// @Summary 按预订号查询预订
// @Tags 预订
// @Produce json
// @Param no path string true "预订号"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/reservations/no/{no} [get]
func (h *Handler) GetReservationByNo(c *gin.Context) {
	no := c.Param("no")
	if no == "" {
		response.BadRequest(c, "预订号不能为空")
		return
	}

	reservation, err := h.reservationService.GetByNo(c.Request.Context(), no)
	handler.MustSucceed(c, err, reservation)
}

// ReservationQRCode 预订二维码
// @Summary 生成预订号二维码（到店出示办理入住）
// @Tags 预订
// @Produce png
// @Param no path string true "预订号"
// @Success 200 {string} binary "PNG 图片"
// @Router /api/v1/reservations/no/{no}/qrcode [get]
func (h *Handler) ReservationQRCode(c *gin.Context) {
	no := c.Param("no")
	if no == "" {
		response.BadRequest(c, "预订号不能为空")
		return
	}

	reservation, err := h.reservationService.GetByNo(c.Request.Context(), no)
	if handler.HandleError(c, err) {
		return
	}

	png, err := h.qrGenerator.GeneratePNG(reservation.ReservationNo)
	if err != nil {
		response.InternalError(c, "二维码生成失败")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// CheckAvailability 查询房型剩余可订数量
// @Summary 查询房型在日期区间的剩余可订数量
// @Tags 预订
// @Produce json
// @Param id path int true "房型ID"
// @Param check_in query string true "入住日期 YYYY-MM-DD"
// @Param check_out query string true "退房日期 YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /api/v1/rooms/{id}/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	remaining, err := h.reservationService.CheckAvailability(
		c.Request.Context(), roomID, c.Query("check_in"), c.Query("check_out"))
	handler.MustSucceed(c, err, gin.H{"room_id": roomID, "remaining": remaining})
}

// GetReservation 获取预订详情
// @Summary 获取预订详情（商户侧）
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/merchant/reservations/{id} [get]
func (h *Handler) GetReservation(c *gin.Context) {
	merchantID, reservationID, ok := handler.RequireMerchantAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetByID(c.Request.Context(), merchantID, reservationID)
	handler.MustSucceed(c, err, reservation)
}

// CheckIn 办理入住
// @Summary 办理入住
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/merchant/reservations/{id}/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	merchantID, reservationID, ok := handler.RequireMerchantAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.CheckIn(c.Request.Context(), merchantID, reservationID)
	handler.MustSucceedWithMessage(c, err, "入住成功", reservation)
}

// CheckOut 办理退房
// @Summary 办理退房
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/merchant/reservations/{id}/check-out [post]
func (h *Handler) CheckOut(c *gin.Context) {
	merchantID, reservationID, ok := handler.RequireMerchantAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.CheckOut(c.Request.Context(), merchantID, reservationID)
	handler.MustSucceedWithMessage(c, err, "退房成功", reservation)
}

// Cancel 取消预订
// @Summary 取消预订
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=models.Reservation}
// @Router /api/v1/merchant/reservations/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	merchantID, reservationID, ok := handler.RequireMerchantAndParseID(c, "预订")
	if !ok {
		return
	}

	reservation, err := h.reservationService.Cancel(c.Request.Context(), merchantID, reservationID)
	handler.MustSucceedWithMessage(c, err, "取消成功", reservation)
}

// ListHotelReservations 获取酒店的预订列表
// @Summary 获取酒店的预订列表（商户侧）
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param room_id query int false "房型ID"
// @Param status query string false "预订状态" Enums(confirmed, check_in, check_out, cancelled)
// @Param reservation_no query string false "预订号"
// @Param contact_phone query string false "联系电话"
// @Param start_date query string false "入住开始日期 YYYY-MM-DD"
// @Param end_date query string false "入住结束日期 YYYY-MM-DD"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.Reservation}
// @Router /api/v1/merchant/hotels/{id}/reservations [get]
func (h *Handler) ListHotelReservations(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	filter := reservationService.ListFilter{
		HotelID:       hotelID,
		Status:        c.Query("status"),
		ReservationNo: c.Query("reservation_no"),
		ContactPhone:  c.Query("contact_phone"),
	}
	if roomID, ok := handler.ParseQueryID(c, "room_id", "房型"); !ok {
		return
	} else if roomID != nil {
		filter.RoomID = *roomID
	}
	if startDate, ok := handler.ParseQueryDate(c, "start_date", "开始日期格式错误"); !ok {
		return
	} else {
		filter.StartDate = startDate
	}
	if endDate, ok := handler.ParseQueryDate(c, "end_date", "结束日期格式错误"); !ok {
		return
	} else {
		filter.EndDate = endDate
	}

	p := handler.BindPagination(c)
	reservations, total, err := h.reservationService.ListByHotel(c.Request.Context(), merchantID, filter, p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, reservations, total, p.Page, p.PageSize)
}

// ListInHouse 获取在住预订
// @Summary 获取酒店当前在住的预订
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]models.Reservation}
// @Router /api/v1/merchant/hotels/{id}/reservations/in-house [get]
func (h *Handler) ListInHouse(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	reservations, total, err := h.reservationService.ListInHouse(c.Request.Context(), merchantID, hotelID, p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, reservations, total, p.Page, p.PageSize)
}

// HotelStats 酒店预订统计
// @Summary 获取酒店预订统计（商户工作台）
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=reservationService.HotelStats}
// @Router /api/v1/merchant/hotels/{id}/reservations/stats [get]
func (h *Handler) HotelStats(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	stats, err := h.reservationService.Stats(c.Request.Context(), merchantID, hotelID)
	handler.MustSucceed(c, err, stats)
}

// RoomOccupancy 房型占用明细
// @Summary 获取房型在日期区间内的占用明细
// @Tags 商户预订
// @Produce json
// @Security BearerAuth
// @Param id path int true "房型ID"
// @Param check_in query string true "区间开始 YYYY-MM-DD"
// @Param check_out query string true "区间结束 YYYY-MM-DD"
// @Success 200 {object} response.Response{data=[]models.Reservation}
// @Router /api/v1/merchant/rooms/{id}/occupancy [get]
func (h *Handler) RoomOccupancy(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	reservations, err := h.reservationService.ListOccupancy(
		c.Request.Context(), merchantID, roomID, c.Query("check_in"), c.Query("check_out"))
	handler.MustSucceed(c, err, reservations)
}

// RegisterRoutes 注册公开预订路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations/no/:no", h.GetReservationByNo)
	rg.GET("/reservations/no/:no/qrcode", h.ReservationQRCode)
	rg.GET("/rooms/:id/availability", h.CheckAvailability)
}

// RegisterProtectedRoutes 注册需商户认证的预订路由
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	merchant := rg.Group("/merchant")
	{
		merchant.GET("/reservations/:id", h.GetReservation)
		merchant.POST("/reservations/:id/check-in", h.CheckIn)
		merchant.POST("/reservations/:id/check-out", h.CheckOut)
		merchant.POST("/reservations/:id/cancel", h.Cancel)
		merchant.GET("/hotels/:id/reservations", h.ListHotelReservations)
		merchant.GET("/hotels/:id/reservations/in-house", h.ListInHouse)
		merchant.GET("/hotels/:id/reservations/stats", h.HotelStats)
		merchant.GET("/rooms/:id/occupancy", h.RoomOccupancy)
	}
}
