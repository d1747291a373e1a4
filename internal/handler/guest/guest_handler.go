// Package guest 提供入住人登记的 HTTP Handler
package guest

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/crypto"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/utils"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	guestService "github.com/BoringLink/yisu-hotel-backend/internal/service/guest"
)

// Handler 入住人处理器
type Handler struct {
	guestService *guestService.GuestService
}

// NewHandler 创建入住人处理器
func NewHandler(guestSvc *guestService.GuestService) *Handler {
	return &Handler{
		guestService: guestSvc,
	}
}

// guestView 档案列表中的入住人视图，证件号与手机号脱敏
// 办理入住需核对原件时走详情接口
type guestView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IDType    string    `json:"id_type"`
	IDNumber  string    `json:"id_number"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// maskGuests 构造脱敏后的入住人列表
func maskGuests(guests []*models.Guest) []guestView {
	views := make([]guestView, 0, len(guests))
	for _, g := range guests {
		views = append(views, guestView{
			ID:        g.ID,
			Name:      g.Name,
			IDType:    g.IDType,
			IDNumber:  crypto.MaskIDCard(g.IDNumber),
			Phone:     crypto.MaskPhone(utils.SafeString(g.Phone)),
			CreatedAt: g.CreatedAt,
		})
	}
	return views
}

// AttachGuest 为预订补录入住人
// @Summary 为预订补录入住人
// @Tags 入住人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Param request body guestService.AttachGuestRequest true "入住人信息"
// @Success 200 {object} response.Response{data=models.Guest}
// @Router /api/v1/merchant/reservations/{id}/guests [post]
func (h *Handler) AttachGuest(c *gin.Context) {
	merchantID, reservationID, ok := handler.RequireMerchantAndParseID(c, "预订")
	if !ok {
		return
	}

	var req guestService.AttachGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	guest, err := h.guestService.Attach(c.Request.Context(), merchantID, reservationID, &req)
	handler.MustSucceed(c, err, guest)
}

// UpdateGuest 修改入住人资料
// @Summary 修改入住人资料
// @Tags 入住人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "入住人ID"
// @Param request body guestService.UpdateGuestRequest true "入住人信息"
// @Success 200 {object} response.Response{data=models.Guest}
// @Router /api/v1/merchant/guests/{id} [put]
func (h *Handler) UpdateGuest(c *gin.Context) {
	_, guestID, ok := handler.RequireMerchantAndParseID(c, "入住人")
	if !ok {
		return
	}

	var req guestService.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	guest, err := h.guestService.Update(c.Request.Context(), guestID, &req)
	handler.MustSucceed(c, err, guest)
}

// GetGuest 获取入住人详情
// @Summary 获取入住人详情
// @Tags 入住人
// @Produce json
// @Security BearerAuth
// @Param id path int true "入住人ID"
// @Success 200 {object} response.Response{data=models.Guest}
// @Router /api/v1/merchant/guests/{id} [get]
func (h *Handler) GetGuest(c *gin.Context) {
	_, guestID, ok := handler.RequireMerchantAndParseID(c, "入住人")
	if !ok {
		return
	}

	guest, err := h.guestService.GetByID(c.Request.Context(), guestID)
	handler.MustSucceed(c, err, guest)
}

// ListReservationGuests 获取预订的入住人
// @Summary 获取预订的入住人列表
// @Tags 入住人
// @Produce json
// @Security BearerAuth
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=[]models.Guest}
// @Router /api/v1/merchant/reservations/{id}/guests [get]
func (h *Handler) ListReservationGuests(c *gin.Context) {
	merchantID, reservationID, ok := handler.RequireMerchantAndParseID(c, "预订")
	if !ok {
		return
	}

	guests, err := h.guestService.ListByReservation(c.Request.Context(), merchantID, reservationID)
	handler.MustSucceed(c, err, guests)
}

// ListHotelGuests 获取酒店的入住人档案
// @Summary 获取酒店的入住人档案（可按姓名、证件号、电话过滤）
// @Tags 入住人
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param name query string false "姓名"
// @Param id_number query string false "证件号"
// @Param phone query string false "电话"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/hotels/{id}/guests [get]
func (h *Handler) ListHotelGuests(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	guests, total, err := h.guestService.ListByHotel(c.Request.Context(), merchantID, hotelID,
		p.Page, p.PageSize, c.Query("name"), c.Query("id_number"), c.Query("phone"))
	handler.MustSucceedPage(c, err, maskGuests(guests), total, p.Page, p.PageSize)
}

// ListCurrentGuests 获取酒店当前在住名单
// @Summary 获取酒店当前在住名单
// @Tags 入住人
// @Produce json
// @Security BearerAuth
// @Param id path int true "酒店ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/hotels/{id}/guests/current [get]
func (h *Handler) ListCurrentGuests(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	guests, total, err := h.guestService.ListCurrentByHotel(c.Request.Context(), merchantID, hotelID, p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, maskGuests(guests), total, p.Page, p.PageSize)
}

// ListRoomGuests 获取房型的历史入住人
// @Summary 获取房型的历史入住人
// @Tags 入住人
// @Produce json
// @Security BearerAuth
// @Param id path int true "房型ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/rooms/{id}/guests [get]
func (h *Handler) ListRoomGuests(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	guests, total, err := h.guestService.ListByRoom(c.Request.Context(), merchantID, roomID, p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, maskGuests(guests), total, p.Page, p.PageSize)
}

// RegisterRoutes 注册入住人路由（需商户认证）
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	merchant := rg.Group("/merchant")
	{
		merchant.POST("/reservations/:id/guests", h.AttachGuest)
		merchant.GET("/reservations/:id/guests", h.ListReservationGuests)
		merchant.GET("/guests/:id", h.GetGuest)
		merchant.PUT("/guests/:id", h.UpdateGuest)
		merchant.GET("/hotels/:id/guests", h.ListHotelGuests)
		merchant.GET("/hotels/:id/guests/current", h.ListCurrentGuests)
		merchant.GET("/rooms/:id/guests", h.ListRoomGuests)
	}
}
