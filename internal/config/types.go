package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avsc-hub/avsc-hub/internal/format"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// GlobalConfig 描述进程级行为：日志与诊断服务。
type GlobalConfig struct {
	ListenPort      int      `mapstructure:"ListenPort"`
	ShutdownTimeout Duration `mapstructure:"ShutdownTimeout"`
	LogLevel        string   `mapstructure:"LogLevel"`
	LogFilePath     string   `mapstructure:"LogFilePath"`
	LogMaxSize      int      `mapstructure:"LogMaxSize"`
	LogMaxBackups   int      `mapstructure:"LogMaxBackups"`
	LogCompress     bool     `mapstructure:"LogCompress"`
}

// SchemaConfig 决定 schema 根目录、定义格式以及是否在启动时批量加载。
type SchemaConfig struct {
	Path      string `mapstructure:"Path"`
	Format    string `mapstructure:"Format"`
	Extension string `mapstructure:"Extension"`
	Preload   bool   `mapstructure:"Preload"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global GlobalConfig `mapstructure:",squash"`
	Schema SchemaConfig `mapstructure:"Schema"`
}

// EffectiveExtension 返回生效的扩展名：显式配置优先，否则使用格式默认值。
func (s SchemaConfig) EffectiveExtension() string {
	if ext := strings.TrimSpace(s.Extension); ext != "" {
		return ext
	}
	if meta, ok := format.Resolve(s.Format); ok {
		return meta.Extension
	}
	return ""
}

// FormatMetadata 返回配置格式对应的注册信息（假定 Validate 已经通过）。
func (s SchemaConfig) FormatMetadata() (format.Metadata, bool) {
	return format.Resolve(s.Format)
}
