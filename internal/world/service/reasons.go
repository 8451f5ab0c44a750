package service

// Reason 细分同一个错误码下的拒绝原因，只进访问日志，不下发给客户端。
type Reason struct {
	Code string
}

func (r Reason) ReasonCode() string { return r.Code }

var (
	ReasonNeutralBase    = Reason{Code: "neutral_base"}
	ReasonForeignBase    = Reason{Code: "foreign_base"}
	ReasonVehicleMissing = Reason{Code: "vehicle_missing"}
	ReasonForeignVehicle = Reason{Code: "foreign_vehicle"}
	ReasonNoCapacity     = Reason{Code: "no_capacity"}
	ReasonNoHarvestRate  = Reason{Code: "no_harvest_rate"}
)
