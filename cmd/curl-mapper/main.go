// Package main provides the CLI entrypoint for curl-mapper.
//
// curl-mapper turns a curl command into a list of request fields that can
// be bound to paths of companion JSON/YAML documents:
//   - parse and fields show what a command sends
//   - flatten and suggest show what a companion document offers
//   - scenario saves the chosen bindings as YAML
//   - serve exposes the same operations over HTTP
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"curl-mapper/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
