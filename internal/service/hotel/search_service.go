package hotel

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

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

// 酒店详情缓存有效期
const hotelCacheTTL = 10 * time.Minute

// SearchService 公开酒店搜索服务
type SearchService struct {
	hotelRepo *repository.HotelRepository
	rdb       *redis.Client
}

// NewSearchService 创建搜索服务
// rdb 为 nil 时跳过缓存
func NewSearchService(hotelRepo *repository.HotelRepository, rdb *redis.Client) *SearchService {
	return &SearchService{
		hotelRepo: hotelRepo,
		rdb:       rdb,
	}
}

// SearchRequest 搜索请求
type SearchRequest struct {
	Keyword  string   `form:"keyword"`
	Location string   `form:"location"`
	StarMin  *int     `form:"star_min"`
	StarMax  *int     `form:"star_max"`
	PriceMin *float64 `form:"price_min"`
	PriceMax *float64 `form:"price_max"`
	TagIDs   []int64  `form:"tag_ids"`
	Page     int      `form:"page"`
	PageSize int      `form:"page_size"`
}

// HotelSummary 搜索结果中的酒店摘要
type HotelSummary struct {
	ID         int64    `json:"id"`
	NameZh     string   `json:"name_zh"`
	NameEn     string   `json:"name_en"`
	Address    string   `json:"address"`
	StarRating int      `json:"star_rating"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	CoverURL   *string  `json:"cover_url,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// SearchResponse 搜索响应
type SearchResponse struct {
	Hotels   []*HotelSummary `json:"hotels"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Search 搜索已上架的酒店
func (s *SearchService) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req.StarMin != nil && (*req.StarMin < 1 || *req.StarMin > 5) {
		return nil, errors.ErrStarRatingInvalid
	}
	if req.StarMax != nil && (*req.StarMax < 1 || *req.StarMax > 5) {
		return nil, errors.ErrStarRatingInvalid
	}

	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filter := repository.HotelSearchFilter{
		Keyword:  req.Keyword,
		Location: req.Location,
		StarMin:  req.StarMin,
		StarMax:  req.StarMax,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		TagIDs:   req.TagIDs,
	}

	hotels, total, err := s.hotelRepo.Search(ctx, filter, p.GetOffset(), p.PageSize)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	metrics.RecordSearchGlobal()

	summaries := make([]*HotelSummary, 0, len(hotels))
	for _, hotel := range hotels {
		summaries = append(summaries, s.toSummary(hotel))
	}

	return &SearchResponse{
		Hotels:   summaries,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}

// GetPublicHotel 获取已上架酒店详情（带缓存）
func (s *SearchService) GetPublicHotel(ctx context.Context, hotelID int64) (*models.Hotel, error) {
	if cached := s.fromCache(ctx, hotelID); cached != nil {
		return cached, nil
	}

	hotel, err := s.hotelRepo.GetByIDWithDetails(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 未上架的酒店对外不可见
	if hotel.Status != models.HotelStatusApproved {
		return nil, errors.ErrHotelNotFound
	}

	s.toCache(ctx, hotel)

	return hotel, nil
}

// Nearby 获取附近已上架的酒店，按球面距离升序
func (s *SearchService) Nearby(ctx context.Context, longitude, latitude, radiusKm float64, limit int) ([]*models.Hotel, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	candidates, err := s.hotelRepo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	type hotelDistance struct {
		hotel *models.Hotel
		km    float64
	}
	matched := make([]hotelDistance, 0, len(candidates))
	for _, hotel := range candidates {
		km := utils.HaversineKm(latitude, longitude, *hotel.Latitude, *hotel.Longitude)
		if km <= radiusKm {
			matched = append(matched, hotelDistance{hotel: hotel, km: km})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].km < matched[j].km })

	if len(matched) > limit {
		matched = matched[:limit]
	}
	hotels := make([]*models.Hotel, 0, len(matched))
	for _, m := range matched {
		hotels = append(hotels, m.hotel)
	}
	return hotels, nil
}

// toSummary 转换为酒店摘要
// Rooms 按价格升序预加载，首个即为最低价
func (s *SearchService) toSummary(hotel *models.Hotel) *HotelSummary {
	summary := &HotelSummary{
		ID:         hotel.ID,
		NameZh:     hotel.NameZh,
		NameEn:     hotel.NameEn,
		Address:    hotel.Address,
		StarRating: hotel.StarRating,
	}
	if len(hotel.Rooms) > 0 {
		price := hotel.Rooms[0].Price
		summary.MinPrice = &price
	}
	if len(hotel.Images) > 0 {
		summary.CoverURL = &hotel.Images[0].URL
	}
	for _, tag := range hotel.Tags {
		summary.Tags = append(summary.Tags, tag.Name)
	}
	return summary
}

// fromCache 从缓存读取酒店详情
func (s *SearchService) fromCache(ctx context.Context, hotelID int64) *models.Hotel {
	if s.rdb == nil {
		return nil
	}
	key := cache.BuildKey(cache.KeyPrefixHotel, formatID(hotelID))
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("读取酒店缓存失败", logger.HotelID(hotelID))
		}
		metrics.RecordCacheMissGlobal("hotel")
		return nil
	}
	var hotel models.Hotel
	if err := json.Unmarshal(data, &hotel); err != nil {
		metrics.RecordCacheMissGlobal("hotel")
		return nil
	}
	metrics.RecordCacheHitGlobal("hotel")
	return &hotel
}

// toCache 写入酒店详情缓存，失败不影响主流程
func (s *SearchService) toCache(ctx context.Context, hotel *models.Hotel) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(hotel)
	if err != nil {
		return
	}
	key := cache.BuildKey(cache.KeyPrefixHotel, formatID(hotel.ID))
	if err := s.rdb.Set(ctx, key, data, hotelCacheTTL).Err(); err != nil {
		logger.Warn("写入酒店缓存失败", logger.HotelID(hotel.ID))
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
