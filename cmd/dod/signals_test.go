package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyShutdown(t *testing.T) {
	got := make(chan os.Signal, 1)
	ctx := notifyShutdown(func(sig os.Signal) { got <- sig })

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after SIGTERM")
	}
	assert.Equal(t, syscall.SIGTERM, <-got)
}
