package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyShutdown returns a context cancelled on the first interrupt or
// SIGTERM. onSignal runs before the cancel so the command can log it with
// whichever logger it uses.
func notifyShutdown(onSignal func(os.Signal)) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		signal.Stop(sigChan)
		onSignal(sig)
		cancel()
	}()

	return ctx
}
