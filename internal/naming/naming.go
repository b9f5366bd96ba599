package naming

import (
	"path"
	"strings"
)

// FullName 组合 name 与 namespace；name 自带 "." 时视为全限定名，忽略 namespace。
func FullName(name, namespace string) string {
	name = strings.TrimSpace(name)
	namespace = strings.Trim(strings.TrimSpace(namespace), ".")
	if strings.Contains(name, ".") || namespace == "" {
		return name
	}
	return namespace + "." + name
}

// Split 拆分出 namespace 与简单名称，无 namespace 时返回空串。
func Split(fullname string) (namespace, name string) {
	idx := strings.LastIndex(fullname, ".")
	if idx < 0 {
		return "", fullname
	}
	return fullname[:idx], fullname[idx+1:]
}

// PathFor 将 com.example.Foo 映射为 com/example/Foo<ext>（斜杠风格的相对路径）。
func PathFor(fullname, ext string) string {
	segments := strings.Split(fullname, ".")
	last := len(segments) - 1
	segments[last] = segments[last] + ext
	return path.Join(segments...)
}

// NameFor 是 PathFor 的逆运算：去掉扩展名，并把目录分隔符替换为 "."。
func NameFor(rel, ext string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	rel = strings.TrimSuffix(rel, ext)
	return strings.ReplaceAll(rel, "/", ".")
}
