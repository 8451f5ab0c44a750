package serverconfig

import (
	"TileArmy/internal/shared/config"
)

type Config struct {
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	Metrics    MetricsConfig    `yaml:"metrics" mapstructure:"metrics"`
	Log        config.LogConfig `yaml:"log" mapstructure:"log"`
	// Game 覆盖 gameconfig.Default() 中的同名字段，见 GameConfig。
	Game map[string]any `yaml:"game" mapstructure:"game"`
	View map[string]any `yaml:"view" mapstructure:"view"`
}

type GameServerConfig struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	StaticDir    string `yaml:"static_dir" mapstructure:"static_dir"`
	AskTimeoutMS int    `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	// Seed 为 0 时用当前时间作为世界随机种子。
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}
