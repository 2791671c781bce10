package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")

	ErrProjectNotFound   = errors.New("项目不存在")
	ErrQuestionNotFound  = errors.New("问题不存在")
	ErrPatentNotFound    = errors.New("专利不存在")
	ErrTeamNotFound      = errors.New("团队不存在")
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrTargetNotFound    = errors.New("目标内容不存在")
	ErrDimensionNotFound = errors.New("学期、领域或类别不存在")

	ErrDuplicateRequest  = errors.New("请求重复提交")
	ErrSelfInteraction   = errors.New("不能对自己的内容进行该操作")
	ErrAlreadyInteracted = errors.New("请勿重复操作")
	ErrNotInteracted     = errors.New("尚未进行该操作")
	ErrTryAgainLater     = errors.New("操作的人太多了，请稍后再试")

	ErrTeamMemberExist    = errors.New("已是团队成员")
	ErrTeamMemberNotFound = errors.New("不是团队成员")

	UnauthorizedError = errors.New("权限不足")
	UnExpectedError   = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserExist:         BadRequest,
	ErrPasswordIncorrect: Unauthorized,

	ErrProjectNotFound:   NotFound,
	ErrQuestionNotFound:  NotFound,
	ErrPatentNotFound:    NotFound,
	ErrTeamNotFound:      NotFound,
	ErrCommentNotFound:   NotFound,
	ErrTargetNotFound:    NotFound,
	ErrDimensionNotFound: NotFound,

	ErrDuplicateRequest:  BadRequest,
	ErrSelfInteraction:   BadRequest,
	ErrAlreadyInteracted: BadRequest,
	ErrNotInteracted:     BadRequest,
	ErrTryAgainLater:     ServiceUnavailable,

	ErrTeamMemberExist:    BadRequest,
	ErrTeamMemberNotFound: BadRequest,

	UnauthorizedError: Unauthorized,
	UnExpectedError:   InternalServerError,
}
