// Package main implements the graphdeco entry point. graphdeco decorates a
// loaded transit graph with realtime updaters discovered from declarative
// configuration, runs them, and tears them down on shutdown.
package main

import (
	"fmt"
	"os"
	"runtime"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	Execute()
}
