package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/phrazzld/scry-drill/internal/platform/logger"
	"github.com/phrazzld/scry-drill/internal/testutils/grader"
	"github.com/phrazzld/scry-drill/internal/wordclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperviseWebServerFailureStopsRunner(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	bindErr := errors.New("listen tcp 127.0.0.1:8090: bind: address already in use")

	var runnerDone atomic.Bool
	serve := func(context.Context) error { return bindErr }
	drive := func(ctx context.Context) error {
		<-ctx.Done()
		runnerDone.Store(true)
		return ctx.Err()
	}

	err := superviseWeb(context.Background(), serve, drive, log)

	assert.ErrorIs(t, err, bindErr)
	assert.True(t, runnerDone.Load(), "runner must have returned before superviseWeb")
}

func TestSuperviseWebRunnerFinishStopsServer(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	var serverDone atomic.Bool
	serve := func(ctx context.Context) error {
		<-ctx.Done()
		serverDone.Store(true)
		return nil
	}
	drive := func(context.Context) error { return nil }

	err := superviseWeb(context.Background(), serve, drive, log)

	assert.NoError(t, err)
	assert.True(t, serverDone.Load())
}

func TestSuperviseWebKeepsServingAfterAuthFailure(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serving := make(chan struct{})
	serve := func(ctx context.Context) error {
		close(serving)
		<-ctx.Done()
		return nil
	}
	authErr := &wordclient.APIError{Op: "fetch batch", Err: wordclient.ErrAuth}
	drive := func(context.Context) error { return authErr }

	done := make(chan error, 1)
	go func() { done <- superviseWeb(ctx, serve, drive, log) }()

	<-serving
	select {
	case err := <-done:
		t.Fatalf("superviseWeb returned before cancellation: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, wordclient.IsAuth(err))
	case <-time.After(5 * time.Second):
		t.Fatal("superviseWeb did not return after cancellation")
	}
}

func TestRunWebAddressInUse(t *testing.T) {
	t.Chdir(t.TempDir())
	g := grader.New(domain.Batch{Learn: []domain.Word{{ID: 1, EnWord: "cat", RuWord: "кот"}}})
	srv := g.Start(t)

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- run(context.Background(), []string{
			"--base-url", srv.URL,
			"--ui", "web",
			"--addr", taken.Addr().String(),
		}, strings.NewReader(""), &stdout, &stderr)
	}()

	select {
	case code := <-done:
		assert.Equal(t, exitFailure, code)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the web presenter failed to listen")
	}
}
