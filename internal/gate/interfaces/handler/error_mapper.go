package handler

import (
	"context"

	"TileArmy/internal/gate/app"
	"TileArmy/internal/shared/transport"
	worldactor "TileArmy/internal/world/actor"
)

const msgBusy = "Server busy, try again later"

// HandleError 返回业务码与下发给客户端的文案，并把 reason 记入访问日志。
func HandleError(ctx context.Context, err error) (int, string) {
	reason := app.GetErrorReasonCode(err)
	if reason != "" {
		transport.SetErrorReason(ctx, reason)
	}

	if app.IsBizRejectedError(err) {
		return worldactor.CodeFromError(err), app.GetErrorMessage(err)
	}
	return transport.SystemError, msgBusy
}
