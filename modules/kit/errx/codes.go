package errx

// 跨模块统一的系统类错误码。业务域错误码（例如 BASE_NOT_FOUND）由各业务包自行定义。
const (
	// CodeInternal 表示服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示世界 actor 不可用或已停止。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 表示向世界 actor 请求超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeReqParamError 表示请求参数错误。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

var (
	ErrInternal    = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
	ErrReqParamERR = NewBiz(CodeReqParamError, "请求参数错误")
)
