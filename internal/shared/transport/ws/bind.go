package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// BindJSON 把入站帧的字段解码到 dst（按 json tag 匹配，数字与字符串弱类型互转）。
func BindJSON(req *WsMsgReq, dst any) error {
	if req == nil || req.Payload == nil {
		return errors.New("ws request payload is nil")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.Payload)
}
