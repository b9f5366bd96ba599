package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
)

// NewDir 以 basePath 为根目录构建只读定义源，根目录必须已存在。
func NewDir(basePath string) (Source, error) {
	if basePath == "" {
		return nil, errors.New("schema path required")
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve schema path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat schema path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("schema path %s is not a directory", abs)
	}

	return &dirSource{basePath: abs, fsys: os.DirFS(abs)}, nil
}

type dirSource struct {
	basePath string
	fsys     fs.FS
}

func (s *dirSource) Read(rel string) (*ReadResult, error) {
	filePath, err := s.path(rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		if isMissing(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if isMissing(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ReadResult{
		Entry: Entry{
			Path:      rel,
			FilePath:  filePath,
			SizeBytes: info.Size(),
			ModTime:   info.ModTime(),
		},
		Data: data,
	}, nil
}

func (s *dirSource) Glob(ext string) ([]string, error) {
	if ext == "" {
		return nil, errors.New("extension must not be empty")
	}
	matches, err := doublestar.Glob(s.fsys, "**/*"+ext, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", ext, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *dirSource) Abs(rel string) string {
	filePath, err := s.path(rel)
	if err != nil {
		return filepath.Join(s.basePath, filepath.FromSlash(rel))
	}
	return filePath
}

func (s *dirSource) path(rel string) (string, error) {
	cleaned := strings.TrimPrefix(path.Clean("/"+rel), "/")
	if cleaned == "" {
		return "", errors.New("definition path required")
	}

	filePath := filepath.Join(s.basePath, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(filePath, s.basePath) {
		return "", errors.New("invalid definition path")
	}
	return filePath, nil
}

// isMissing 将不存在与路径过长统一视为找不到定义。
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENAMETOOLONG)
}
