package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run())
}

// run executes the CLI under an interrupt-cancelable context so Ctrl-C aborts
// an in-flight import cleanly instead of leaving the store lock held.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintln(os.Stderr, "rollmatch:", err)
		return 1
	}
	return 0
}
