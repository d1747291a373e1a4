// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// 状态流转错误时携带当前状态与目标状态
	CurrentState string `json:"current_state,omitempty"`
	TargetState  string `json:"target_state,omitempty"`
	Err          error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:         e.Code,
		Message:      message,
		CurrentState: e.CurrentState,
		TargetState:  e.TargetState,
		Err:          e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:         e.Code,
		Message:      e.Message,
		CurrentState: e.CurrentState,
		TargetState:  e.TargetState,
		Err:          err,
	}
}

// NewInvalidTransition 创建状态流转错误，携带当前状态与目标状态
func NewInvalidTransition(base *AppError, current, target string) *AppError {
	return &AppError{
		Code:         base.Code,
		Message:      fmt.Sprintf("%s：当前状态 %s，无法流转至 %s", base.Message, current, target),
		CurrentState: current,
		TargetState:  target,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrRateLimitExceed = New(1007, "请求过于频繁")
	ErrOperationFailed = New(1008, "操作失败")
	ErrInvalidDate     = New(1009, "日期格式错误")
	ErrInvalidDateSpan = New(1010, "离店日期必须晚于入住日期")
	ErrInvalidPhone    = New(1011, "手机号格式不正确")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrTokenRefreshFail = New(2003, "刷新令牌失败")
	ErrPermissionDenied = New(2004, "权限不足")
	ErrAccountDisabled  = New(2005, "账号已禁用")
	ErrPasswordError    = New(2006, "密码错误")
	ErrEmailExists      = New(2007, "邮箱已被注册")
	ErrMerchantNotFound = New(2008, "商户不存在")
	ErrAdminNotFound    = New(2009, "管理员不存在")
)

// 酒店错误码 (3000-3999)
var (
	ErrHotelNotFound      = New(3000, "酒店不存在")
	ErrHotelNotOwned      = New(3001, "无权操作该酒店")
	ErrHotelNotApproved   = New(3002, "酒店未上架")
	ErrHotelStatusInvalid = New(3003, "酒店状态不允许该操作")
	ErrRejectReasonEmpty  = New(3004, "驳回原因不能为空")
	ErrStarRatingInvalid  = New(3005, "星级必须在1到5之间")
)

// 房型错误码 (4000-4999)
var (
	ErrRoomNotFound      = New(4000, "房型不存在")
	ErrRoomNotInHotel    = New(4001, "房型不属于该酒店")
	ErrRoomPriceInvalid  = New(4002, "房型价格不合法")
	ErrRoomQuantityError = New(4003, "房型数量不合法")
)

// 预订错误码 (5000-5999)
var (
	ErrReservationNotFound = New(5000, "预订不存在")
	ErrReservationStatus   = New(5001, "预订状态不允许该操作")
	ErrNoAvailability      = New(5002, "所选日期房型已订满")
	ErrCheckInNotAllowed   = New(5003, "仅已确认的预订可办理入住")
	ErrCheckOutNotAllowed  = New(5004, "仅已入住的预订可办理退房")
	ErrCancelNotAllowed    = New(5005, "仅已确认的预订可取消")
)

// 入住人错误码 (6000-6999)
var (
	ErrGuestNotFound   = New(6000, "入住人不存在")
	ErrGuestInfoError  = New(6001, "入住人信息不完整")
	ErrGuestIDInvalid  = New(6002, "证件号码不合法")
)

// 标签错误码 (7000-7999)
var (
	ErrTagNotFound = New(7000, "标签不存在")
	ErrTagExists   = New(7001, "标签已存在")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
