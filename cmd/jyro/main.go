// Command jyro is the CLI surface named in §0's module layout: run a
// script once (optionally re-running it on every save), lint a script
// without executing it, diff two artifacts' embedded source, or serve
// the httpapi HTTP/websocket surface. Grounded on the teacher's
// cmd/aleutian entry point (rootCmd.Execute() in main, a
// PersistentPreRun reading shared flags before any subcommand runs).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
