package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gamedex/gamedex/pkg/cli"
	"github.com/jlrickert/cli-toolkit/toolkit"
)

func main() {
	ctx := context.Background()

	rt, err := toolkit.NewRuntime()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if exitCode, err := cli.Run(ctx, rt, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode)
	}
}
