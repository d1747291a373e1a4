// Package search 提供面向客人的酒店查询 HTTP Handler
package search

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/handler"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	hotelService "github.com/BoringLink/yisu-hotel-backend/internal/service/hotel"
	tagService "github.com/BoringLink/yisu-hotel-backend/internal/service/tag"
)

// Handler 酒店查询处理器
type Handler struct {
	searchService *hotelService.SearchService
	tagService    *tagService.TagService
}

// NewHandler 创建查询处理器
func NewHandler(searchSvc *hotelService.SearchService, tagSvc *tagService.TagService) *Handler {
	return &Handler{
		searchService: searchSvc,
		tagService:    tagSvc,
	}
}

// SearchHotels 搜索酒店
// @Summary 搜索酒店（仅已上架）
// @Tags 酒店查询
// @Produce json
// @Param keyword query string false "关键词（中英文名、描述）"
// @Param location query string false "位置（地址子串）"
// @Param star_min query int false "最低星级"
// @Param star_max query int false "最高星级"
// @Param price_min query number false "最低价格"
// @Param price_max query number false "最高价格"
// @Param tag_ids query []int false "标签ID（任一命中）"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=hotelService.SearchResponse}
// @Router /api/v1/hotels [get]
func (h *Handler) SearchHotels(c *gin.Context) {
	var req hotelService.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	resp, err := h.searchService.Search(c.Request.Context(), &req)
	handler.MustSucceed(c, err, resp)
}

// GetHotel 获取酒店详情
// @Summary 获取酒店详情（仅已上架）
// @Tags 酒店查询
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/hotels/{id} [get]
func (h *Handler) GetHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	hotel, err := h.searchService.GetPublicHotel(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, hotel)
}

// NearbyHotels 附近酒店
// @Summary 按坐标查询附近酒店
// @Tags 酒店查询
// @Produce json
// @Param longitude query number true "经度"
// @Param latitude query number true "纬度"
// @Param radius_km query number false "半径（公里，默认5）"
// @Param limit query int false "返回数量（默认20，最大50）"
// @Success 200 {object} response.Response{data=[]models.Hotel}
// @Router /api/v1/hotels/nearby [get]
func (h *Handler) NearbyHotels(c *gin.Context) {
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		response.BadRequest(c, "经度参数错误")
		return
	}
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		response.BadRequest(c, "纬度参数错误")
		return
	}

	radiusKm, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	hotels, err := h.searchService.Nearby(c.Request.Context(), longitude, latitude, radiusKm, limit)
	handler.MustSucceed(c, err, hotels)
}

// ListTags 获取全部标签
// @Summary 获取全部标签（供筛选）
// @Tags 酒店查询
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Tag}
// @Router /api/v1/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListAll(c.Request.Context())
	handler.MustSucceed(c, err, tags)
}

// ListHotelTags 获取酒店的标签
// @Summary 获取酒店的标签
// @Tags 酒店查询
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=[]models.Tag}
// @Router /api/v1/hotels/{id}/tags [get]
func (h *Handler) ListHotelTags(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	tags, err := h.tagService.ListByHotel(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, tags)
}

// RegisterRoutes 注册公开查询路由
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hotels := rg.Group("/hotels")
	{
		hotels.GET("", h.SearchHotels)
		hotels.GET("/nearby", h.NearbyHotels)
		hotels.GET("/:id", h.GetHotel)
		hotels.GET("/:id/tags", h.ListHotelTags)
	}
	rg.GET("/tags", h.ListTags)
}
