package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrContentNotFound     = errors.New("内容不存在")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrGoalNotFound        = errors.New("募捐目标不存在")
	ErrNotifyNotFound      = errors.New("通知不存在")
	ErrContentEmpty        = errors.New("内容不能为空")
	ErrCommentEmpty        = errors.New("评论内容不能为空")
	ErrCommentTooLong      = errors.New("评论内容过长")
	ErrKindInvalid         = errors.New("内容类型无效")
	ErrDecisionInvalid     = errors.New("审核决定无效")
	ErrGoalMonthRequired   = errors.New("月度目标需指定月份")
	ErrGoalMonthUnexpected = errors.New("年度目标不应指定月份")
	ErrGoalAmountInvalid   = errors.New("目标金额无效")
	ErrActionDuplicate     = errors.New("重复操作")
	ErrConcurrencyConflict = errors.New("并发冲突，请稍后重试")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrContentNotFound:     NotFound,
	ErrCommentNotFound:     NotFound,
	ErrGoalNotFound:        NotFound,
	ErrNotifyNotFound:      NotFound,
	ErrContentEmpty:        BadRequest,
	ErrCommentEmpty:        BadRequest,
	ErrCommentTooLong:      BadRequest,
	ErrKindInvalid:         BadRequest,
	ErrDecisionInvalid:     BadRequest,
	ErrGoalMonthRequired:   BadRequest,
	ErrGoalMonthUnexpected: BadRequest,
	ErrGoalAmountInvalid:   BadRequest,
	ErrActionDuplicate:     BadRequest,
	ErrConcurrencyConflict: Conflict,
	UnauthorizedError:      Forbidden,
	UnExpectedError:        InternalServerError,
}
