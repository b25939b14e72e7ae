package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd, cmdCtx := newRootCommand()
	if err := execute(cmd, cmdCtx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
