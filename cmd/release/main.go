// release bumps the module version, tags it and publishes release notes.
//
// Usage:
//
//	release <major|minor|patch> [--dry-run]
//	release next <major|minor|patch>
//	release notes [--from-tag=<tag> [--to-tag=<ref>] | --from-commit=<sha> [--to-commit=<ref>]] [-o <file>]
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
