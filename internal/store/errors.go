package store

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaNotFound 表示映射后的定义文件不存在。
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrDefinitionMismatch 表示文件声明的类型名与路径推导的名称不一致。
	ErrDefinitionMismatch = errors.New("schema definition mismatch")
	// ErrUnresolvable 表示依赖修复无法继续推进，例如两个未加载类型互相引用。
	ErrUnresolvable = errors.New("schema reference unresolvable")
)

// NotFoundError carries the path that was attempted for a qualified name.
type NotFoundError struct {
	Name string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find schema %s at %q", e.Name, e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// MismatchError reports that the file at Path defines Actual instead of Expected.
type MismatchError struct {
	Expected string
	Actual   string
	Path     string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected schema %q to define type %s, found %s", e.Path, e.Expected, e.Actual)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrDefinitionMismatch
}

// UnresolvableError reports a dependency that cannot be loaded without
// revisiting a resolution already in progress.
type UnresolvableError struct {
	Name    string
	Missing string
	Reason  string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("cannot resolve %s: reference to %s %s", e.Name, e.Missing, e.Reason)
}

func (e *UnresolvableError) Is(target error) bool {
	return target == ErrUnresolvable
}
