package store

import "github.com/avsc-hub/avsc-hub/internal/schema"

// staging 是单次解析尝试看到的 registry：已提交缓存 + 本轮新增。
// 只有解析成功且名称匹配时才 commit，失败的尝试直接丢弃。
type staging struct {
	committed map[string]schema.Schema
	added     map[string]schema.Schema
	order     []string
}

func newStaging(committed map[string]schema.Schema) *staging {
	return &staging{
		committed: committed,
		added:     make(map[string]schema.Schema),
	}
}

func (s *staging) Lookup(fullname string) (schema.Schema, bool) {
	if found, ok := s.committed[fullname]; ok {
		return found, true
	}
	found, ok := s.added[fullname]
	return found, ok
}

func (s *staging) Register(fullname string, sc schema.Schema) bool {
	if _, exists := s.Lookup(fullname); exists {
		return false
	}
	s.added[fullname] = sc
	s.order = append(s.order, fullname)
	return true
}

func (s *staging) commit() {
	for _, name := range s.order {
		if _, exists := s.committed[name]; !exists {
			s.committed[name] = s.added[name]
		}
	}
}
