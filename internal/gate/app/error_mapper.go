package app

import (
	"errors"

	"TileArmy/modules/kit/errx"
)

// wrapTechErr 保留业务错误原样，技术错误统一附上 reason。
func wrapTechErr(err error) error {
	if err == nil || IsBizRejectedError(err) {
		return err
	}
	switch {
	case errors.Is(err, errx.ErrTimeout):
		return ErrUnavailable.WithReason(ReasonWorldTimeout).WithCause(err)
	case errors.Is(err, errx.ErrUnavailable):
		return ErrUnavailable.WithReason(ReasonWorldUnavailable).WithCause(err)
	default:
		return ErrInternalServer.WithReason(ReasonWorldInternal).WithCause(err)
	}
}
