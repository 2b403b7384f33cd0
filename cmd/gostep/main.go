// gostep performs built-in processing steps on command-line inputs.
//
// Usage:
//
//	gostep list
//	gostep perform <step> [inputs...] [--extra=<value>] [--concurrency=<n>]
//	               [--config=<file>] [--log-format=text|json] [--metrics]
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
