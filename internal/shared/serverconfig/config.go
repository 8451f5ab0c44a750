package serverconfig

import (
	"fmt"

	"TileArmy/internal/shared/config"
	"TileArmy/internal/shared/gameconfig"
	"TileArmy/internal/shared/logs"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultConfigRelPath = ""

var Conf Config

// Load 加载 conf.yml 到 Conf，返回实际使用的文件路径。
// 热更新只作用于日志级别，游戏参数在世界启动后不可变。
func Load() (string, error) {
	path, err := config.Load(defaultConfigRelPath, &Conf, onChange)
	if err != nil {
		return "", err
	}
	Conf.Log.Level = normalizeLevel(Conf.Log.Level)
	return path, nil
}

func onChange(v *viper.Viper, e fsnotify.Event) {
	var next Config
	if err := v.Unmarshal(&next); err != nil {
		logs.Error("config reload failed", zap.String("file", e.Name), zap.Error(err))
		return
	}
	level := normalizeLevel(next.Log.Level)
	if err := logs.SetLevel(level); err != nil {
		logs.Warn("config reload: bad log level", zap.String("level", level), zap.Error(err))
		return
	}
	logs.Info("config reloaded", zap.String("file", e.Name), zap.String("log_level", level))
}

func normalizeLevel(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

// GameConfig 以默认配置为底，叠加 game 节并校验。
func (c Config) GameConfig() (*gameconfig.Config, error) {
	cfg := gameconfig.Default()
	if err := decodeOver(c.Game, cfg); err != nil {
		return nil, fmt.Errorf("decode game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

func (c Config) ViewConfig() (gameconfig.ViewConfig, error) {
	view := gameconfig.DefaultView()
	if err := decodeOver(c.View, &view); err != nil {
		return view, fmt.Errorf("decode view config: %w", err)
	}
	return view, nil
}

func decodeOver(raw map[string]any, out any) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
