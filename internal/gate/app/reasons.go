package app

// Reason 网关侧技术错误原因，写进访问日志 error_reason。
type Reason string

func (r Reason) ReasonCode() string { return string(r) }

const (
	ReasonWorldUnavailable Reason = "WORLD_UNAVAILABLE"
	ReasonWorldTimeout     Reason = "WORLD_TIMEOUT"
	ReasonWorldInternal    Reason = "WORLD_INTERNAL"
)
