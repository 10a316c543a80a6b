// Command chronicler turns Perceval items into CloudEvents.
//
//	chronicler [--input FILE] [--output FILE] [--json-line] [--skip-invalid] DATASOURCE
//	chronicler sources
//	chronicler serve
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"

	// bundled eventizers register themselves
	_ "github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer/git"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "chronicler:", err)
		os.Exit(perr.Exit(err))
	}
}
