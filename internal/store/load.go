package store

import (
	"fmt"

	"github.com/avsc-hub/avsc-hub/internal/logging"
	"github.com/avsc-hub/avsc-hub/internal/naming"
)

// LoadAll 遍历根目录下所有定义文件并逐个解析，填满缓存。
// 已经因依赖修复提前加载的名称会直接命中缓存。返回访问过的文件数。
func (s *Store) LoadAll() (int, error) {
	files, err := s.src.Glob(s.ext)
	if err != nil {
		return 0, err
	}

	visited := 0
	for _, rel := range files {
		name := naming.NameFor(rel, s.ext)
		if _, err := s.find(name); err != nil {
			return visited, fmt.Errorf("load %s: %w", rel, err)
		}
		visited++
	}

	fields := logging.SchemaFields("load_all", "", false)
	fields["files"] = visited
	fields["schemas"] = len(s.schemas)
	s.logger.WithFields(fields).Info("schemas loaded")
	return visited, nil
}
