package source

import (
	"errors"
	"time"
)

// Source 负责读取 schema 定义文件。目录布局遵循：
//
//	<SchemaPath>/<namespace 目录>/<name><ext>
//
// 所有相对路径均为斜杠风格。
type Source interface {
	// Read 读取完整定义文件。文件不存在、路径过长或目标为目录时返回 ErrNotFound。
	Read(rel string) (*ReadResult, error)

	// Glob 递归列出所有以 ext 结尾的定义文件，返回相对路径。
	Glob(ext string) ([]string, error)

	// Abs 返回 rel 对应的绝对路径，用于错误信息。
	Abs(rel string) string
}

// Entry 描述一次读取命中的文件信息。
type Entry struct {
	Path      string    `json:"path"`
	FilePath  string    `json:"file_path"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// ReadResult 组合 Entry 与文件内容。
type ReadResult struct {
	Entry Entry
	Data  []byte
}

// ErrNotFound 表示定义文件不存在。
var ErrNotFound = errors.New("definition file not found")
