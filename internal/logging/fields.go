package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// SchemaFields 提供 schema 名称与缓存命中字段，供解析日志复用。
func SchemaFields(action, name string, cacheHit bool) logrus.Fields {
	fields := logrus.Fields{
		"action":    action,
		"cache_hit": cacheHit,
	}
	if name != "" {
		fields["schema"] = name
	}
	return fields
}
