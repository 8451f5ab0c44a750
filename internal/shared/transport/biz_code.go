package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 业务码：0 成功；1~499 客户端/业务原因；>=500 服务端原因。
const (
	OK           = 0
	InvalidParam = 400
	Rejected     = 403
	NotFound     = 404
	Conflict     = 409
	SystemError  = 500
)
