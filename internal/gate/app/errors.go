package app

import (
	"TileArmy/modules/kit/errx"
)

var (
	ErrUnavailable    = errx.ErrUnavailable
	ErrInternalServer = errx.ErrInternal
)

// IsBizRejectedError 业务拒绝会以 notice 下发给玩家，其余错误统一回 busy。
func IsBizRejectedError(err error) bool {
	return errx.IsBiz(err)
}

// GetErrorReasonCode 优先取 reason，没有时回退到错误码。
func GetErrorReasonCode(err error) string {
	if r := errx.ReasonOf(err); r != "" {
		return r
	}
	return string(errx.CodeOf(err))
}

func GetErrorMessage(err error) string {
	return errx.MsgOf(err)
}
