// Package version exposes build metadata injected through -ldflags.
package version

import "fmt"

// Version/Commit 可在构建时通过 -ldflags "-X" 注入。
var (
	Version = "0.1.0"
	Commit  = "dev"
)

// Full 返回 CLI 输出与启动日志共用的版本串。
func Full() string {
	return fmt.Sprintf("avsc-hub %s (%s)", Version, Commit)
}
