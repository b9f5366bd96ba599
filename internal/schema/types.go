package schema

import (
	"fmt"

	"github.com/hamba/avro/v2"
)

// Schema 是解析器产出的不透明结构，store 只读取名称与字段信息用于诊断。
type Schema = avro.Schema

// Registry 是解析期间共享的命名 schema 表。解析器只能新增条目，
// 已存在的名称不会被覆盖，Register 此时返回 false。
type Registry interface {
	Lookup(fullname string) (Schema, bool)
	Register(fullname string, s Schema) bool
}

// Parser 将原始定义文本解析为 Schema，并把文档内定义的命名类型登记到 registry。
type Parser interface {
	Parse(definition []byte, registry Registry) (Schema, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(definition []byte, registry Registry) (Schema, error)

// Parse makes ParserFunc satisfy Parser.
func (f ParserFunc) Parse(definition []byte, registry Registry) (Schema, error) {
	return f(definition, registry)
}

// UnresolvedReferenceError reports that the definition refers to a named
// type that is neither defined in the document nor present in the registry.
type UnresolvedReferenceError struct {
	// Name is the fully qualified name of the missing type.
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference to %q", e.Name)
}

// DuplicateNameError reports that the definition declares a named type that
// the registry already holds. Registered types are never redefined.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("name %q is already defined", e.Name)
}

// FullNameOf 返回命名类型的全限定名；匿名/原始类型返回 false。
func FullNameOf(s Schema) (string, bool) {
	named, ok := Unwrap(s).(avro.NamedSchema)
	if !ok {
		return "", false
	}
	return named.FullName(), true
}

// HasFields 仅在 record 且字段非空时返回 true，仅用于日志诊断。
func HasFields(s Schema) bool {
	rec, ok := Unwrap(s).(*avro.RecordSchema)
	return ok && len(rec.Fields()) > 0
}

// Unwrap 去掉 hamba/avro 为递归引用生成的 RefSchema 包装。
func Unwrap(s Schema) Schema {
	if ref, ok := s.(*avro.RefSchema); ok && ref != nil {
		return ref.Schema()
	}
	return s
}
