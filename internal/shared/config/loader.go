package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load 读取 cfgName 指向的配置并 Unmarshal 到 out。
// onChange 非空时开启 WatchConfig，文件变更后把新的 viper 实例交给回调，由调用方决定哪些字段热更新。
func Load(cfgName string, out any, onChange func(v *viper.Viper, e fsnotify.Event)) (string, error) {
	configPath, err := Resolve(cfgName)
	if err != nil {
		return "", err
	}
	if !fileExist(configPath) {
		return "", fmt.Errorf("config file not exist, configPath=%v", configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config %s: %w", configPath, err)
	}
	if err := v.Unmarshal(out); err != nil {
		return "", fmt.Errorf("unmarshal config %s: %w", configPath, err)
	}
	if onChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			onChange(v, e)
		})
		v.WatchConfig()
	}
	return configPath, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
