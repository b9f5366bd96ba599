package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hamba/avro/v2"

	"github.com/avsc-hub/avsc-hub/internal/naming"
)

var primitiveTypes = map[string]struct{}{
	"null":    {},
	"boolean": {},
	"int":     {},
	"long":    {},
	"float":   {},
	"double":  {},
	"bytes":   {},
	"string":  {},
}

// AvroParser 基于 hamba/avro 解析 .avsc 定义。解析前先遍历 JSON 文档，
// 找出第一个未定义的命名引用并以 UnresolvedReferenceError 返回；
// 重新定义 registry 中已有的名称时返回 DuplicateNameError。
type AvroParser struct{}

// NewAvroParser returns a parser for Avro JSON schema definitions.
func NewAvroParser() *AvroParser {
	return &AvroParser{}
}

// Parse implements Parser.
func (p *AvroParser) Parse(definition []byte, registry Registry) (Schema, error) {
	var doc any
	if err := json.Unmarshal(definition, &doc); err != nil {
		return nil, fmt.Errorf("decode schema definition: %w", err)
	}

	sc := newReferenceScan(registry)
	if err := sc.walk(doc, ""); err != nil {
		return nil, err
	}

	cache := &avro.SchemaCache{}
	for name, known := range sc.external {
		cache.Add(name, known)
	}

	parsed, err := avro.ParseBytesWithCache(definition, "", cache)
	if err != nil {
		return nil, err
	}

	for _, name := range sc.defined {
		registered := cache.Get(name)
		if registered == nil {
			continue
		}
		if !registry.Register(name, Unwrap(registered)) {
			return nil, &DuplicateNameError{Name: name}
		}
	}
	return Unwrap(parsed), nil
}

// referenceScan 记录文档内定义的命名类型（按出现顺序）以及从 registry 借用的外部类型。
type referenceScan struct {
	registry Registry
	seen     map[string]struct{}
	defined  []string
	external map[string]Schema
}

func newReferenceScan(registry Registry) *referenceScan {
	return &referenceScan{
		registry: registry,
		seen:     make(map[string]struct{}),
		external: make(map[string]Schema),
	}
}

// walk 在遇到第一个缺失引用或重复定义时停止，全部可解析时返回 nil。
func (s *referenceScan) walk(node any, namespace string) error {
	switch v := node.(type) {
	case string:
		return s.reference(v, namespace)
	case []any:
		for _, branch := range v {
			if err := s.walk(branch, namespace); err != nil {
				return err
			}
		}
	case map[string]any:
		return s.walkComplex(v, namespace)
	}
	return nil
}

func (s *referenceScan) walkComplex(m map[string]any, namespace string) error {
	typ, isName := m["type"].(string)
	if !isName {
		return s.walk(m["type"], namespace)
	}

	switch typ {
	case "record", "error", "enum", "fixed":
		fullname := declaredName(m, namespace)
		if fullname == "" {
			return nil
		}
		if err := s.declare(fullname); err != nil {
			return err
		}
		if typ == "enum" || typ == "fixed" {
			return nil
		}
		inner, _ := naming.Split(fullname)
		fields, _ := m["fields"].([]any)
		for _, f := range fields {
			field, ok := f.(map[string]any)
			if !ok {
				continue
			}
			if err := s.walk(field["type"], inner); err != nil {
				return err
			}
		}
		return nil
	case "array":
		return s.walk(m["items"], namespace)
	case "map":
		return s.walk(m["values"], namespace)
	default:
		return s.reference(typ, namespace)
	}
}

func (s *referenceScan) declare(fullname string) error {
	if _, dup := s.seen[fullname]; dup {
		return nil
	}
	if _, taken := s.registry.Lookup(fullname); taken {
		return &DuplicateNameError{Name: fullname}
	}
	s.seen[fullname] = struct{}{}
	s.defined = append(s.defined, fullname)
	return nil
}

func (s *referenceScan) reference(name, namespace string) error {
	if _, ok := primitiveTypes[name]; ok {
		return nil
	}
	fullname := naming.FullName(name, namespace)
	if _, ok := s.seen[fullname]; ok {
		return nil
	}
	if _, ok := s.external[fullname]; ok {
		return nil
	}
	if known, ok := s.registry.Lookup(fullname); ok {
		s.external[fullname] = known
		return nil
	}
	return &UnresolvedReferenceError{Name: fullname}
}

func declaredName(m map[string]any, namespace string) string {
	name, _ := m["name"].(string)
	if name == "" {
		return ""
	}
	if ns, ok := m["namespace"].(string); ok && !strings.Contains(name, ".") {
		namespace = ns
	}
	return naming.FullName(name, namespace)
}
