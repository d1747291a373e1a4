package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/jwt"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	"github.com/BoringLink/yisu-hotel-backend/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// 辅助函数：创建测试上下文
func createTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// 辅助函数：创建带路径参数的测试上下文
func createTestContextWithParam(paramName, paramValue string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: paramName, Value: paramValue}}
	return c, w
}

// 辅助函数：创建带查询参数的测试上下文
func createTestContextWithQuery(query string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c, w
}

// 辅助函数：创建已登录商户的测试上下文
func createMerchantContext(merchantID int64) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := createTestContext()
	c.Set(middleware.ContextKeyUserID, merchantID)
	c.Set(middleware.ContextKeyUserType, jwt.UserTypeMerchant)
	return c, w
}

// 辅助函数：创建已登录管理员的测试上下文
func createAdminContext(adminID int64) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := createTestContext()
	c.Set(middleware.ContextKeyUserID, adminID)
	c.Set(middleware.ContextKeyUserType, jwt.UserTypeAdmin)
	return c, w
}

// 辅助函数：解析响应
func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestHandleError_NoError(t *testing.T) {
	c, w := createTestContext()

	handled := HandleError(c, nil)

	assert.False(t, handled)
	assert.Empty(t, w.Body.String())
}

func TestHandleError_NotFoundFamily(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.AppError
	}{
		{"酒店不存在", errors.ErrHotelNotFound},
		{"房型不存在", errors.ErrRoomNotFound},
		{"预订不存在", errors.ErrReservationNotFound},
		{"入住人不存在", errors.ErrGuestNotFound},
		{"标签不存在", errors.ErrTagNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := createTestContext()

			handled := HandleError(c, tt.err)

			assert.True(t, handled)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestHandleError_Forbidden(t *testing.T) {
	c, w := createTestContext()

	handled := HandleError(c, errors.ErrHotelNotOwned)

	assert.True(t, handled)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleError_NoAvailability(t *testing.T) {
	c, w := createTestContext()

	handled := HandleError(c, errors.ErrNoAvailability)

	assert.True(t, handled)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleError_InvalidTransition(t *testing.T) {
	c, w := createTestContext()
	err := errors.NewInvalidTransition(errors.ErrCheckInNotAllowed, "check_in", "check_in")

	handled := HandleError(c, err)

	assert.True(t, handled)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleError_Unauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.AppError
	}{
		{"令牌过期", errors.ErrTokenExpired},
		{"令牌无效", errors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := createTestContext()

			handled := HandleError(c, tt.err)

			assert.True(t, handled)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestHandleError_ValidationFamily(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.AppError
	}{
		{"日期格式错误", errors.ErrInvalidDate},
		{"日期区间错误", errors.ErrInvalidDateSpan},
		{"驳回原因为空", errors.ErrRejectReasonEmpty},
		{"星级无效", errors.ErrStarRatingInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := createTestContext()

			handled := HandleError(c, tt.err)

			assert.True(t, handled)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleError_GenericError(t *testing.T) {
	c, w := createTestContext()

	handled := HandleError(c, assert.AnError)

	assert.True(t, handled)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMustSucceed_Success(t *testing.T) {
	c, w := createTestContext()

	MustSucceed(c, nil, gin.H{"ok": true})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(w)
	assert.Equal(t, 0, resp.Code)
}

func TestMustSucceed_Error(t *testing.T) {
	c, w := createTestContext()

	MustSucceed(c, errors.ErrHotelNotFound, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMustSucceedPage(t *testing.T) {
	c, w := createTestContext()

	MustSucceedPage(c, nil, []string{"a", "b"}, 2, 1, 10)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(w)
	assert.Equal(t, 0, resp.Code)
	require.NotNil(t, resp.Data)
}

func TestRequireMerchantID_Authenticated(t *testing.T) {
	c, _ := createMerchantContext(int64(123))

	merchantID, ok := RequireMerchantID(c)

	assert.True(t, ok)
	assert.Equal(t, int64(123), merchantID)
}

func TestRequireMerchantID_NotAuthenticated(t *testing.T) {
	c, w := createTestContext()

	merchantID, ok := RequireMerchantID(c)

	assert.False(t, ok)
	assert.Equal(t, int64(0), merchantID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireMerchantID_WrongUserType(t *testing.T) {
	// 管理员令牌不能访问商户接口
	c, w := createAdminContext(int64(1))

	_, ok := RequireMerchantID(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminID_Authenticated(t *testing.T) {
	c, _ := createAdminContext(int64(7))

	adminID, ok := RequireAdminID(c)

	assert.True(t, ok)
	assert.Equal(t, int64(7), adminID)
}

func TestRequireAdminID_NotAuthenticated(t *testing.T) {
	c, w := createMerchantContext(int64(7))

	_, ok := RequireAdminID(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestParseID_Valid(t *testing.T) {
	c, _ := createTestContextWithParam("id", "42")

	id, ok := ParseID(c, "酒店")

	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestParseID_Invalid(t *testing.T) {
	c, w := createTestContextWithParam("id", "abc")

	id, ok := ParseID(c, "酒店")

	assert.False(t, ok)
	assert.Equal(t, int64(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseParamID(t *testing.T) {
	c, _ := createTestContextWithParam("tag_id", "5")

	id, ok := ParseParamID(c, "tag_id", "标签")

	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestParseQueryID_Empty(t *testing.T) {
	c, _ := createTestContextWithQuery("")

	id, ok := ParseQueryID(c, "room_id", "房型")

	assert.True(t, ok)
	assert.Nil(t, id)
}

func TestParseQueryID_Valid(t *testing.T) {
	c, _ := createTestContextWithQuery("room_id=9")

	id, ok := ParseQueryID(c, "room_id", "房型")

	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, int64(9), *id)
}

func TestParseQueryID_Invalid(t *testing.T) {
	c, w := createTestContextWithQuery("room_id=xyz")

	id, ok := ParseQueryID(c, "room_id", "房型")

	assert.False(t, ok)
	assert.Nil(t, id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseRequiredQueryID(t *testing.T) {
	c, _ := createTestContextWithQuery("hotel_id=3")
	id, ok := ParseRequiredQueryID(c, "hotel_id", "酒店")
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	c2, w2 := createTestContextWithQuery("")
	_, ok = ParseRequiredQueryID(c2, "hotel_id", "酒店")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 10, d.Day())

	_, err = ParseDate("2026/09/10")
	assert.Error(t, err)
}

func TestParseDateTime_MultipleFormats(t *testing.T) {
	for _, s := range []string{
		"2026-09-10",
		"2026-09-10 14:30:00",
		"2026-09-10T14:30:00Z",
	} {
		_, err := ParseDateTime(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseDateTime("not-a-date")
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}

func TestParseQueryDate(t *testing.T) {
	c, _ := createTestContextWithQuery("start_date=2026-09-10")
	d, ok := ParseQueryDate(c, "start_date", "日期格式错误")
	assert.True(t, ok)
	require.NotNil(t, d)

	c2, _ := createTestContextWithQuery("")
	d, ok = ParseQueryDate(c2, "start_date", "日期格式错误")
	assert.True(t, ok)
	assert.Nil(t, d)

	c3, w3 := createTestContextWithQuery("start_date=bad")
	_, ok = ParseQueryDate(c3, "start_date", "日期格式错误")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w3.Code)
}

func TestParseStayDates(t *testing.T) {
	in, out, err := ParseStayDates("2026-09-10", "2026-09-12")
	require.NoError(t, err)
	assert.True(t, out.After(in))
}

func TestParseStayDates_SameDay(t *testing.T) {
	_, _, err := ParseStayDates("2026-09-10", "2026-09-10")
	assert.ErrorIs(t, err, errors.ErrInvalidDateSpan)
}

func TestParseStayDates_Inverted(t *testing.T) {
	_, _, err := ParseStayDates("2026-09-12", "2026-09-10")
	assert.ErrorIs(t, err, errors.ErrInvalidDateSpan)
}

func TestParseStayDates_BadFormat(t *testing.T) {
	_, _, err := ParseStayDates("bad", "2026-09-12")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrInvalidDate.Code, appErr.Code)
}

func TestBindPagination_Defaults(t *testing.T) {
	c, _ := createTestContextWithQuery("")

	p := BindPagination(c)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 0, p.GetOffset())
}

func TestBindPagination_Explicit(t *testing.T) {
	c, _ := createTestContextWithQuery("page=3&page_size=20")

	p := BindPagination(c)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 40, p.GetOffset())
}

func TestBindPagination_CapsPageSize(t *testing.T) {
	c, _ := createTestContextWithQuery("page=0&page_size=500")

	p := BindPagination(c)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
}

func TestRequireMerchantAndParseID_Success(t *testing.T) {
	c, _ := createMerchantContext(int64(456))
	c.Params = gin.Params{{Key: "id", Value: "12"}}

	merchantID, resourceID, ok := RequireMerchantAndParseID(c, "酒店")

	assert.True(t, ok)
	assert.Equal(t, int64(456), merchantID)
	assert.Equal(t, int64(12), resourceID)
}

func TestRequireMerchantAndParseID_NotAuthenticated(t *testing.T) {
	c, w := createTestContextWithParam("id", "12")

	_, _, ok := RequireMerchantAndParseID(c, "酒店")

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireMerchantAndParseID_InvalidID(t *testing.T) {
	c, w := createMerchantContext(int64(456))
	c.Params = gin.Params{{Key: "id", Value: "oops"}}

	_, _, ok := RequireMerchantAndParseID(c, "酒店")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireAdminAndParseID_Success(t *testing.T) {
	c, _ := createAdminContext(int64(2))
	c.Params = gin.Params{{Key: "id", Value: "8"}}

	adminID, resourceID, ok := RequireAdminAndParseID(c, "酒店")

	assert.True(t, ok)
	assert.Equal(t, int64(2), adminID)
	assert.Equal(t, int64(8), resourceID)
}
