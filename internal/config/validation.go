package config

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avsc-hub/avsc-hub/internal/format"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "must be within 1-65535")
	}
	if g.ShutdownTimeout.DurationValue() <= 0 {
		return newFieldError("Global.ShutdownTimeout", "must be greater than 0")
	}
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("Global.LogLevel", err.Error())
	}

	s := &c.Schema
	if strings.TrimSpace(s.Path) == "" {
		return newFieldError("Schema.Path", "must not be empty")
	}

	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if _, ok := format.Resolve(s.Format); !ok {
		return newFieldError("Schema.Format", "unsupported format: "+s.Format+" (supported: "+supportedFormats()+")")
	}

	if ext := strings.TrimSpace(s.Extension); ext != "" {
		if !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
			return newFieldError("Schema.Extension", "must start with '.' and contain no path separators")
		}
		s.Extension = ext
	}
	return nil
}

func supportedFormats() string {
	metas := format.List()
	keys := make([]string, len(metas))
	for i, meta := range metas {
		keys[i] = meta.Key
	}
	return strings.Join(keys, "|")
}
