// Package handler 提供 API Handler 的通用辅助函数
// 用于减少 Handler 层的代码重复，统一错误处理、认证检查、参数解析等操作
package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/errors"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/response"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/utils"
	"github.com/BoringLink/yisu-hotel-backend/internal/middleware"
)

// HandleError 处理错误并发送适当的响应
// 如果 err 为 nil，返回 false（表示无错误需要处理）
// 如果 err 不为 nil，发送错误响应并返回 true（表示已处理错误，调用方应该 return）
//
// 使用示例:
//
//	result, err := service.DoSomething()
//	if HandleError(c, err) {
//	    return
//	}
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		writeAppError(c, appErr)
		return true
	}
	response.InternalError(c, err.Error())
	return true
}

// writeAppError 按错误类别映射 HTTP 状态码
func writeAppError(c *gin.Context, appErr *errors.AppError) {
	switch appErr.Code {
	case errors.ErrNotFound.Code,
		errors.ErrHotelNotFound.Code,
		errors.ErrRoomNotFound.Code,
		errors.ErrReservationNotFound.Code,
		errors.ErrGuestNotFound.Code,
		errors.ErrTagNotFound.Code,
		errors.ErrMerchantNotFound.Code:
		response.NotFound(c, appErr.Message)
	case errors.ErrUnauthorized.Code,
		errors.ErrTokenExpired.Code,
		errors.ErrTokenInvalid.Code:
		response.Unauthorized(c, appErr.Message)
	case errors.ErrPermissionDenied.Code,
		errors.ErrHotelNotOwned.Code:
		response.Forbidden(c, appErr.Message)
	case errors.ErrNoAvailability.Code:
		response.Conflict(c, appErr.Message)
	case errors.ErrInvalidParams.Code,
		errors.ErrInvalidDate.Code,
		errors.ErrInvalidDateSpan.Code,
		errors.ErrRejectReasonEmpty.Code,
		errors.ErrStarRatingInvalid.Code,
		errors.ErrGuestInfoError.Code,
		errors.ErrHotelStatusInvalid.Code,
		errors.ErrReservationStatus.Code,
		errors.ErrCheckInNotAllowed.Code,
		errors.ErrCheckOutNotAllowed.Code,
		errors.ErrCancelNotAllowed.Code:
		response.BadRequest(c, appErr.Message)
	default:
		response.Error(c, appErr.Code, appErr.Message)
	}
}

// HandleErrorWithMessage 处理错误，对非 AppError 使用自定义消息
// 适用于需要隐藏内部错误详情的场景
func HandleErrorWithMessage(c *gin.Context, err error, message string) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		writeAppError(c, appErr)
		return true
	}
	response.InternalError(c, message)
	return true
}

// MustSucceed 便捷封装：如果有错误则返回错误响应，否则返回成功响应
// 适用于简单的「调用服务 -> 返回结果」场景
//
// 使用示例:
//
//	result, err := service.GetData()
//	MustSucceed(c, err, result)
//	return  // 注意：调用 MustSucceed 后必须 return
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.Success(c, data)
}

// MustSucceedWithMessage 便捷封装：带自定义成功消息
func MustSucceedWithMessage(c *gin.Context, err error, message string, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.SuccessWithMessage(c, message, data)
}

// MustSucceedPage 便捷封装：分页响应版本
//
// 使用示例:
//
//	list, total, err := service.GetList(offset, limit)
//	MustSucceedPage(c, err, list, total, page, pageSize)
//	return
func MustSucceedPage(c *gin.Context, err error, list interface{}, total int64, page, pageSize int) {
	if HandleError(c, err) {
		return
	}
	response.SuccessPage(c, list, total, page, pageSize)
}

// RequireMerchantID 获取当前商户ID，如果未登录则返回401响应
// 返回 (merchantID, true) 表示已登录
// 返回 (0, false) 表示未登录（已发送响应，调用方应该 return）
func RequireMerchantID(c *gin.Context) (int64, bool) {
	merchantID := middleware.GetMerchantID(c)
	if merchantID == 0 {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	return merchantID, true
}

// RequireAdminID 获取当前管理员ID，如果未登录则返回401响应
// 语义上用于管理员 Handler，实际实现与 RequireMerchantID 相同
func RequireAdminID(c *gin.Context) (int64, bool) {
	adminID := middleware.GetAdminID(c)
	if adminID == 0 {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	return adminID, true
}

// ParseID 解析路径参数 "id" 为 int64
// 返回 (id, true) 表示解析成功
// 返回 (0, false) 表示解析失败（已发送400响应，调用方应该 return）
func ParseID(c *gin.Context, resourceName string) (int64, bool) {
	return ParseParamID(c, "id", resourceName)
}

// ParseParamID 解析指定路径参数为 int64
// paramName: 路径参数名称（如 "id", "hotel_id", "room_id"）
// resourceName: 资源名称，用于错误消息（如 "酒店", "房型"）
func ParseParamID(c *gin.Context, paramName, resourceName string) (int64, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return 0, false
	}
	return id, true
}

// ParseQueryID 解析查询参数中的可选 ID
// 如果参数为空返回 (nil, true)
// 如果解析失败返回 (nil, false)（已发送400响应）
// 如果解析成功返回 (*id, true)
func ParseQueryID(c *gin.Context, paramName, resourceName string) (*int64, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return nil, false
	}
	return &id, true
}

// ParseRequiredQueryID 解析查询参数中的必填 ID
// 如果参数为空或解析失败返回 (0, false)（已发送400响应）
func ParseRequiredQueryID(c *gin.Context, paramName, resourceName string) (int64, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		response.BadRequest(c, "请提供"+resourceName+"ID")
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return 0, false
	}
	return id, true
}

// 时间格式常量
const (
	DateFormat        = "2006-01-02"
	DateTimeFormat    = "2006-01-02 15:04:05"
	DateTimeFormatISO = "2006-01-02T15:04:05Z07:00"
)

// 支持的日期时间格式列表
var dateTimeFormats = []string{
	DateTimeFormatISO,
	DateTimeFormat,
	DateFormat,
}

// ParseDate 解析日期字符串 (YYYY-MM-DD)
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// ParseDateTime 解析日期时间字符串，支持多种格式
func ParseDateTime(s string) (time.Time, error) {
	for _, format := range dateTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrInvalidDate
}

// ParseQueryDate 从查询参数解析日期
// 返回 (nil, true) 如果参数为空
// 返回 (nil, false) 如果解析失败（已发送400响应）
// 返回 (*time, true) 如果解析成功
func ParseQueryDate(c *gin.Context, paramName, errorMsg string) (*time.Time, bool) {
	dateStr := c.Query(paramName)
	if dateStr == "" {
		return nil, true
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		response.BadRequest(c, errorMsg)
		return nil, false
	}
	return &t, true
}

// ParseStayDates 从请求体字段解析入住/离店日期
// 离店日期不晚于入住日期时返回 ErrInvalidDateSpan
func ParseStayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := ParseDateTime(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidDate.WithMessage("入住日期格式错误")
	}
	out, err := ParseDateTime(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidDate.WithMessage("离店日期格式错误")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, errors.ErrInvalidDateSpan
	}
	return in, out, nil
}

// BindPagination 从查询参数绑定并规范化分页参数
// 默认 page=1, pageSize=10, 最大 pageSize=100
//
// 使用示例:
//
//	p := handler.BindPagination(c)
//	list, total, err := service.GetList(p.GetOffset(), p.GetLimit())
//	MustSucceedPage(c, err, list, total, p.Page, p.PageSize)
func BindPagination(c *gin.Context) utils.Pagination {
	var p utils.Pagination
	p.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	p.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	p.Normalize()
	return p
}

// RequireMerchantAndParseID 组合：检查商户登录 + 解析ID参数
// 适用于大多数需要登录且操作特定资源的接口
func RequireMerchantAndParseID(c *gin.Context, resourceName string) (merchantID, resourceID int64, ok bool) {
	merchantID, ok = RequireMerchantID(c)
	if !ok {
		return 0, 0, false
	}
	resourceID, ok = ParseID(c, resourceName)
	if !ok {
		return 0, 0, false
	}
	return merchantID, resourceID, true
}

// RequireAdminAndParseID 组合：检查管理员登录 + 解析ID参数
func RequireAdminAndParseID(c *gin.Context, resourceName string) (adminID, resourceID int64, ok bool) {
	adminID, ok = RequireAdminID(c)
	if !ok {
		return 0, 0, false
	}
	resourceID, ok = ParseID(c, resourceName)
	if !ok {
		return 0, 0, false
	}
	return adminID, resourceID, true
}
