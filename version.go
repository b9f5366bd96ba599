package main

import (
	"fmt"

	"github.com/avsc-hub/avsc-hub/internal/format"
	"github.com/avsc-hub/avsc-hub/internal/version"
)

// printVersion 输出注入的版本信息以及当前编译进来的 schema 格式。
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
	for _, meta := range format.List() {
		fmt.Fprintf(stdOut, "  format %s (%s)\n", meta.Key, meta.Extension)
	}
}
