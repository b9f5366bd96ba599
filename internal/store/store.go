package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/avsc-hub/avsc-hub/internal/logging"
	"github.com/avsc-hub/avsc-hub/internal/naming"
	"github.com/avsc-hub/avsc-hub/internal/schema"
	"github.com/avsc-hub/avsc-hub/internal/source"
)

// Options 汇总构建 Store 所需的协作者，Source/Parser/Logger 均为必填。
type Options struct {
	Source    source.Source
	Parser    schema.Parser
	Logger    *logrus.Logger
	Extension string
}

// Store 维护 全限定名 -> Schema 的缓存，并负责按需加载与依赖修复。
type Store struct {
	src    source.Source
	parser schema.Parser
	logger *logrus.Logger
	ext    string

	schemas   map[string]schema.Schema
	resolving map[string]struct{}
}

// New 校验协作者并返回空缓存的 Store。
func New(opts Options) (*Store, error) {
	if opts.Source == nil {
		return nil, errors.New("schema source is required")
	}
	if opts.Parser == nil {
		return nil, errors.New("schema parser is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Extension == "" {
		return nil, errors.New("definition extension is required")
	}

	return &Store{
		src:       opts.Source,
		parser:    opts.Parser,
		logger:    opts.Logger,
		ext:       opts.Extension,
		schemas:   make(map[string]schema.Schema),
		resolving: make(map[string]struct{}),
	}, nil
}

// Find 解析 name（可选 namespace）对应的 schema，命中缓存时不会读取文件。
func (s *Store) Find(name, namespace string) (schema.Schema, error) {
	fullname := naming.FullName(name, namespace)
	if fullname == "" {
		return nil, errors.New("schema name is required")
	}
	return s.find(fullname)
}

// Lookup 只查询缓存，不触发加载。
func (s *Store) Lookup(fullname string) (schema.Schema, bool) {
	cached, ok := s.schemas[fullname]
	return cached, ok
}

// Names 返回已缓存的全限定名（有序）。
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回缓存条目数。
func (s *Store) Len() int {
	return len(s.schemas)
}

func (s *Store) find(fullname string) (schema.Schema, error) {
	if cached, ok := s.schemas[fullname]; ok {
		s.logHit(fullname, cached)
		return cached, nil
	}

	rel := naming.PathFor(fullname, s.ext)
	result, err := s.src.Read(rel)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, &NotFoundError{Name: fullname, Path: s.src.Abs(rel)}
		}
		return nil, fmt.Errorf("read schema %s: %w", fullname, err)
	}

	s.resolving[fullname] = struct{}{}
	defer delete(s.resolving, fullname)

	tried := make(map[string]struct{})
	for {
		attempt := newStaging(s.schemas)
		parsed, err := s.parser.Parse(result.Data, attempt)

		var unresolved *schema.UnresolvedReferenceError
		if errors.As(err, &unresolved) {
			missing := unresolved.Name
			if err := s.checkProgress(fullname, missing, tried); err != nil {
				return nil, err
			}
			tried[missing] = struct{}{}

			fields := logging.SchemaFields("resolve_dependency", fullname, false)
			fields["dependency"] = missing
			s.logger.WithFields(fields).Info("schema dependency missing")

			if _, err := s.find(missing); err != nil {
				return nil, err
			}
			// 上一轮解析可能留下不完整的登记，重试前清理。
			delete(s.schemas, fullname)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logParse(fullname, result, parsed)

		if actual, named := schema.FullNameOf(parsed); named && actual != fullname {
			return nil, &MismatchError{Expected: fullname, Actual: actual, Path: result.Entry.FilePath}
		}

		attempt.commit()
		if _, ok := s.schemas[fullname]; !ok {
			s.schemas[fullname] = parsed
		}
		return s.schemas[fullname], nil
	}
}

// checkProgress 拒绝无法推进的重试：自引用、环形依赖或重复缺失同一个名称。
func (s *Store) checkProgress(fullname, missing string, tried map[string]struct{}) error {
	if missing == fullname {
		return &UnresolvableError{Name: fullname, Missing: missing, Reason: "points back at the schema being parsed"}
	}
	if _, again := tried[missing]; again {
		return &UnresolvableError{Name: fullname, Missing: missing, Reason: "is still missing after it was resolved"}
	}
	if _, busy := s.resolving[missing]; busy {
		return &UnresolvableError{Name: fullname, Missing: missing, Reason: "forms a cycle with a schema still being resolved"}
	}
	if _, cached := s.schemas[missing]; cached {
		return &UnresolvableError{Name: fullname, Missing: missing, Reason: "is cached but the parser still reports it missing"}
	}
	return nil
}

func (s *Store) logHit(fullname string, cached schema.Schema) {
	entry := s.logger.WithFields(logging.SchemaFields("schema_lookup", fullname, true))
	if !schema.HasFields(cached) {
		entry.Warn("cached schema has no fields")
		return
	}
	entry.Info("schema ok")
}

func (s *Store) logParse(fullname string, result *source.ReadResult, parsed schema.Schema) {
	fields := logging.SchemaFields("schema_parse", fullname, false)
	fields["path"] = result.Entry.FilePath
	fields["definition"] = string(result.Data)
	entry := s.logger.WithFields(fields)
	if !schema.HasFields(parsed) {
		entry.Error("parsed schema has no fields")
		return
	}
	entry.Info("schema parsed")
}
