package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcama/linqlab/config"
)

func TestRun_StopsCleanlyOnCancel(t *testing.T) {
	config.Set("APP_PORT", "0")
	config.Set("GRPC_PORT", "0")
	config.Set("SHUTDOWN_TIMEOUT", "2")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, http.NotFoundHandler(), nil)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenFailure(t *testing.T) {
	config.Set("APP_PORT", "not-a-port")
	t.Cleanup(func() { config.Set("APP_PORT", "0") })

	err := Run(context.Background(), http.NotFoundHandler(), nil)
	assert.ErrorContains(t, err, "server: listen")
}
