// Package format 聚合可用的 schema 定义格式，并提供统一的注册入口。
//
// 每个格式需要声明：
//   1. 唯一的 Key（配置中的 Format 字段）；
//   2. 固定的文件扩展名，决定 naming 如何把全限定名映射到文件；
//   3. 构造 schema.Parser 的工厂函数。
//
// 内置的 avro 格式在 init() 中注册。
package format
