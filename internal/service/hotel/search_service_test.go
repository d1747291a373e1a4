// Package hotel 搜索服务单元测试
package hotel

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appErrors "github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/models"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
)

// setupSearchService 创建测试用的搜索服务（不带缓存）
func setupSearchService(t *testing.T) (*SearchService, *gorm.DB) {
	db := setupTestDB(t)
	service := NewSearchService(repository.NewHotelRepository(db), nil)
	return service, db
}

// setupSearchServiceWithRedis 创建带 miniredis 缓存的搜索服务
func setupSearchServiceWithRedis(t *testing.T) (*SearchService, *gorm.DB, *miniredis.Miniredis) {
	db := setupTestDB(t)

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	service := NewSearchService(repository.NewHotelRepository(db), rdb)
	return service, db, s
}

// createSearchableHotel 创建带房型的已上架酒店
func createSearchableHotel(t *testing.T, db *gorm.DB, merchantID int64, nameZh string, star int, price float64) *models.Hotel {
	hotel := &models.Hotel{
		MerchantID: merchantID,
		NameZh:     nameZh,
		NameEn:     "Test Hotel",
		Address:    "深圳市南山区科技园",
		StarRating: star,
		Status:     models.HotelStatusApproved,
		Rooms: []models.Room{
			{Name: "标准间", Price: price, Capacity: 2, Quantity: 5},
		},
	}
	err := db.Create(hotel).Error
	require.NoError(t, err)
	return hotel
}

func TestSearchService_Search_LifecycleVisibility(t *testing.T) {
	service, db := setupSearchService(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	hotel := createSearchableHotel(t, db, merchant.ID, "易宿深圳湾酒店", 4, 388)

	// 已上架可搜索
	resp, err := service.Search(ctx, &SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	// 下架后不可见
	db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Update("status", models.HotelStatusOffline)
	resp, err = service.Search(ctx, &SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)

	// 重新上架后恢复可见
	db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Update("status", models.HotelStatusApproved)
	resp, err = service.Search(ctx, &SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestSearchService_Search_MinPriceInSummary(t *testing.T) {
	service, db := setupSearchService(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	hotel := createSearchableHotel(t, db, merchant.ID, "易宿深圳湾酒店", 4, 388)
	db.Create(&models.Room{HotelID: hotel.ID, Name: "特惠房", Price: 288, Capacity: 2, Quantity: 2})

	resp, err := service.Search(ctx, &SearchRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Hotels, 1)
	require.NotNil(t, resp.Hotels[0].MinPrice)
	assert.Equal(t, 288.0, *resp.Hotels[0].MinPrice)
}

func TestSearchService_Search_Pagination(t *testing.T) {
	service, db := setupSearchService(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	for i := 0; i < 15; i++ {
		createSearchableHotel(t, db, merchant.ID, "连锁酒店", 3, 200)
	}

	// 默认每页10条
	resp, err := service.Search(ctx, &SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.Total)
	assert.Len(t, resp.Hotels, 10)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)

	// 第二页剩余5条
	resp, err = service.Search(ctx, &SearchRequest{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.Total)
	assert.Len(t, resp.Hotels, 5)

	// 每页上限100
	resp, err = service.Search(ctx, &SearchRequest{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.PageSize)
}

func TestSearchService_Search_InvalidStarRange(t *testing.T) {
	service, _ := setupSearchService(t)
	ctx := context.Background()

	star := 6
	_, err := service.Search(ctx, &SearchRequest{StarMin: &star})
	assert.ErrorIs(t, err, appErrors.ErrStarRatingInvalid)
}

func TestSearchService_GetPublicHotel(t *testing.T) {
	service, db := setupSearchService(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	hotel := createSearchableHotel(t, db, merchant.ID, "易宿深圳湾酒店", 4, 388)

	found, err := service.GetPublicHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, hotel.ID, found.ID)
	assert.Len(t, found.Rooms, 1)
}

func TestSearchService_GetPublicHotel_HidesUnapproved(t *testing.T) {
	service, db := setupSearchService(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	for _, status := range []string{
		models.HotelStatusPending,
		models.HotelStatusRejected,
		models.HotelStatusOffline,
	} {
		hotel := createSearchableHotel(t, db, merchant.ID, "测试酒店", 3, 200)
		db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Update("status", status)

		_, err := service.GetPublicHotel(ctx, hotel.ID)
		assert.ErrorIs(t, err, appErrors.ErrHotelNotFound, "状态 %s 对外应不可见", status)
	}

	_, err := service.GetPublicHotel(ctx, 999)
	assert.ErrorIs(t, err, appErrors.ErrHotelNotFound)
}

func TestSearchService_GetPublicHotel_Cache(t *testing.T) {
	service, db, s := setupSearchServiceWithRedis(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	hotel := createSearchableHotel(t, db, merchant.ID, "易宿深圳湾酒店", 4, 388)

	// 首次查询写入缓存
	_, err := service.GetPublicHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Positive(t, len(s.Keys()))

	// 数据库中改名，缓存仍返回旧值
	db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Update("name_zh", "改名酒店")

	found, err := service.GetPublicHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "易宿深圳湾酒店", found.NameZh)

	// 清掉缓存后读到新值
	s.FlushAll()
	found, err = service.GetPublicHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "改名酒店", found.NameZh)
}

func TestSearchService_Nearby(t *testing.T) {
	service, db := setupSearchService(t)
	ctx := context.Background()
	merchant := createTestMerchant(t, db, "m1@example.com")

	// 深圳湾附近的酒店
	lng1, lat1 := 113.9547, 22.5216
	near := createSearchableHotel(t, db, merchant.ID, "深圳湾酒店", 4, 388)
	db.Model(&models.Hotel{}).Where("id = ?", near.ID).Updates(map[string]interface{}{
		"longitude": lng1, "latitude": lat1,
	})

	// 广州的酒店，距离远超半径
	lng2, lat2 := 113.2644, 23.1291
	far := createSearchableHotel(t, db, merchant.ID, "广州塔酒店", 4, 388)
	db.Model(&models.Hotel{}).Where("id = ?", far.ID).Updates(map[string]interface{}{
		"longitude": lng2, "latitude": lat2,
	})

	// 无坐标的酒店不参与
	createSearchableHotel(t, db, merchant.ID, "无坐标酒店", 3, 200)

	hotels, err := service.Nearby(ctx, 113.95, 22.52, 5, 10)
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, near.ID, hotels[0].ID)
}
