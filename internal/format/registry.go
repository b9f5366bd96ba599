package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/avsc-hub/avsc-hub/internal/schema"
)

const defaultFormatKey = "avro"

var globalRegistry = newRegistry()

// Metadata 记录一个格式的静态信息，供配置校验、store 构建和诊断端使用。
type Metadata struct {
	Key         string
	Description string
	Extension   string
	NewParser   func() schema.Parser
}

type registry struct {
	mu      sync.RWMutex
	formats map[string]Metadata
}

func newRegistry() *registry {
	return &registry{formats: make(map[string]Metadata)}
}

// Register 将格式加入全局注册表，重复键会返回错误。
func Register(meta Metadata) error {
	return globalRegistry.register(meta)
}

// MustRegister 在注册失败时 panic，适合 init() 中调用。
func MustRegister(meta Metadata) {
	if err := Register(meta); err != nil {
		panic(err)
	}
}

// Resolve 返回指定键的格式元数据，键大小写不敏感。
func Resolve(key string) (Metadata, bool) {
	return globalRegistry.resolve(key)
}

// List 返回按键排序的格式列表。
func List() []Metadata {
	return globalRegistry.list()
}

// DefaultKey 返回内置 avro 格式的键值。
func DefaultKey() string {
	return defaultFormatKey
}

func (r *registry) normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (r *registry) register(meta Metadata) error {
	key := r.normalizeKey(meta.Key)
	if key == "" {
		return fmt.Errorf("format key is required")
	}
	if !strings.HasPrefix(meta.Extension, ".") {
		return fmt.Errorf("format %s: extension must start with '.'", key)
	}
	if meta.NewParser == nil {
		return fmt.Errorf("format %s: parser factory is required", key)
	}
	meta.Key = key

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formats[key]; exists {
		return fmt.Errorf("format %s already registered", key)
	}
	r.formats[key] = meta
	return nil
}

func (r *registry) resolve(key string) (Metadata, bool) {
	normalized := r.normalizeKey(key)
	if normalized == "" {
		return Metadata{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.formats[normalized]
	return meta, ok
}

func (r *registry) list() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.formats) == 0 {
		return nil
	}

	keys := make([]string, 0, len(r.formats))
	for key := range r.formats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]Metadata, 0, len(keys))
	for _, key := range keys {
		result = append(result, r.formats[key])
	}
	return result
}
