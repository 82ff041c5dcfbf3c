// File: cmd/ringstress/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ringstress drives one producer and one consumer against a byte ring for a
// fixed duration and verifies every byte that crosses it.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
