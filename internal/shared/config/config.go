package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	// EnvConfigPath 指定配置文件路径，优先级高于调用方传入的路径。
	EnvConfigPath = "TILEARMY_CONFIG"
)

// LogConfig 是 logs.Init 使用的日志配置。
type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// Resolve 决定最终使用的配置文件：
// 1) 环境变量 TILEARMY_CONFIG；
// 2) 传入 cfgName（相对路径按工作目录解析）；
// 3) 从工作目录向上查找 configs/conf.yml。
func Resolve(cfgName string) (string, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		cfgName = env
	}
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName, nil
		}
		return filepath.Join(curDir, cfgName), nil
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &NotFoundError{Path: defaultConfigRelPath, From: startDir}
		}
		dir = parent
	}
}

type NotFoundError struct {
	Path string
	From string
}

func (e *NotFoundError) Error() string {
	return "config file not exist, searched " + e.Path + " from: " + e.From
}
