// main is the entry point for the setupdeps CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kaihendry/setupdeps/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
