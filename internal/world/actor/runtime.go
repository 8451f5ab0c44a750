package actor

import (
	"context"
	"errors"
	"time"

	"TileArmy/internal/shared/metrics"
	"TileArmy/internal/shared/session"
	"TileArmy/internal/shared/transport"
	"TileArmy/internal/shared/transport/ws"
	"TileArmy/internal/world/actors"
	"TileArmy/internal/world/delta"
	"TileArmy/internal/world/dto"
	"TileArmy/internal/world/service"
	"TileArmy/modules/kit/errx"
	"TileArmy/modules/kit/logx"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

type Options struct {
	// TickEvery<=0 关闭自动 tick
	TickEvery  time.Duration
	AskTimeout time.Duration
	Metrics    *metrics.Game
	Logger     logx.Logger
}

// Runtime 是世界 actor 的同步门面，供 ws/http 层调用。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	manager *protoactor.PID
	timeout time.Duration
}

func NewRuntime(sim *service.Simulation, sessions session.Manager, opts Options) *Runtime {
	askTimeout := opts.AskTimeout
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	worldCfg := actors.Config{
		TickEvery: opts.TickEvery,
		Metrics:   opts.Metrics,
		Logger:    opts.Logger,
	}
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(func() protoactor.Actor {
			return actors.NewWorldActor(sim, sessions, worldCfg)
		})
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:  system,
		root:    root,
		manager: manager,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

// Join 接纳名字为 name 的连接：重名返回 ErrNameInUse，成功时 init 已推入 conn。
func (r *Runtime) Join(ctx context.Context, name string, conn ws.WSConn) (bool, error) {
	res, err := r.ask(ctx, &actors.HWJoin{WorldBaseMessage: base(name), Conn: conn})
	if err != nil {
		return false, err
	}
	reply, err := as[*actors.WHJoin](res)
	if err != nil {
		return false, err
	}
	return reply.Created, nil
}

// Leave 处理连接关闭；conn 已不是当前连接时返回 false。
func (r *Runtime) Leave(ctx context.Context, name string, conn ws.WSConn) (bool, error) {
	res, err := r.ask(ctx, &actors.HWLeave{WorldBaseMessage: base(name), Conn: conn})
	if err != nil {
		return false, err
	}
	reply, err := as[*actors.WHLeave](res)
	if err != nil {
		return false, err
	}
	return reply.Disconnected, nil
}

func (r *Runtime) Command(ctx context.Context, name string, cmd service.Command) (string, error) {
	res, err := r.ask(ctx, &actors.HWCommand{WorldBaseMessage: base(name), Cmd: cmd})
	if err != nil {
		return "", err
	}
	reply, err := as[*actors.WHCommand](res)
	if err != nil {
		return "", err
	}
	return reply.Msg, nil
}

func (r *Runtime) RemovePlayer(ctx context.Context, name string) error {
	res, err := r.ask(ctx, &actors.HWRemovePlayer{WorldBaseMessage: base(name)})
	if err != nil {
		return err
	}
	_, err = as[*actors.WHRemovePlayer](res)
	return err
}

func (r *Runtime) PlayerView(ctx context.Context, name string) (dto.PlayerView, error) {
	res, err := r.ask(ctx, &actors.HWPlayerView{WorldBaseMessage: base(name)})
	if err != nil {
		return dto.PlayerView{}, err
	}
	reply, err := as[*actors.WHPlayerView](res)
	if err != nil {
		return dto.PlayerView{}, err
	}
	return reply.View, nil
}

// Step 手动推进一个 tick，返回本次广播的变化（未广播时为 nil）。
func (r *Runtime) Step(ctx context.Context) ([]delta.Record, error) {
	res, err := r.ask(ctx, &actors.HWStep{})
	if err != nil {
		return nil, err
	}
	reply, err := as[*actors.WHStep](res)
	if err != nil {
		return nil, err
	}
	return reply.Records, nil
}

func base(name string) actors.WorldBaseMessage {
	return actors.WorldBaseMessage{Name: name}
}

func (r *Runtime) ask(ctx context.Context, msg any) (any, error) {
	return r.request(r.manager, msg, r.timeoutFromContext(ctx))
}

// as 把应答还原为期望类型；WHFail 直接返回其中的错误。
func as[T any](res any) (T, error) {
	var zero T
	switch v := res.(type) {
	case *actors.WHFail:
		if v.Err == nil {
			return zero, &RuntimeError{Code: transport.SystemError, Message: "actor 返回空错误"}
		}
		return zero, v.Err
	case T:
		return v, nil
	}
	return zero, &RuntimeError{
		Code:    transport.SystemError,
		Message: "actor 应答类型不符",
		Cause:   errx.ErrInternal,
	}
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor runtime 未初始化", Cause: errx.ErrUnavailable}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.SystemError, Message: "actor pid 为空", Cause: errx.ErrUnavailable}
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		cause := errx.ErrUnavailable.WithCause(err)
		if errors.Is(err, protoactor.ErrTimeout) {
			cause = errx.ErrTimeout.WithCause(err)
		}
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 请求失败",
			Cause:   cause,
		}
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

// CodeFromError 把错误映射为访问日志业务码。
func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	switch {
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrUnknownCommand),
		errors.Is(err, errx.ErrReqParamERR):
		return transport.InvalidParam
	case errors.Is(err, service.ErrNameInUse):
		return transport.Conflict
	case errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, service.ErrBaseNotFound),
		errors.Is(err, service.ErrVehicleNotFound),
		errors.Is(err, service.ErrResourceNotFound):
		return transport.NotFound
	}
	if errx.IsBiz(err) {
		return transport.Rejected
	}
	return transport.SystemError
}
