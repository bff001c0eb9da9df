package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// A canceled context is the user interrupting a translation run,
		// not a failure worth reporting.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "sublate: %v\n", err)
		}
		os.Exit(1)
	}
}
