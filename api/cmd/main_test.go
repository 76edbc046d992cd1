package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// fakeServer signals started when ListenAndServe runs so tests can order
// the shutdown signal after the listen goroutine is actually scheduled.
// The call flags are mutex-guarded: the listen goroutine outlives Run().
type fakeServer struct {
	addr string

	listenErr   error
	shutdownErr error
	closeErr    error

	started chan struct{}

	mu             sync.Mutex
	listenCalled   bool
	shutdownCalled bool
	closeCalled    bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{addr: ":0", started: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.mu.Lock()
	f.listenCalled = true
	f.mu.Unlock()
	close(f.started)
	return f.listenErr
}
func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	f.mu.Unlock()
	return f.shutdownErr
}
func (f *fakeServer) Close() error {
	f.mu.Lock()
	f.closeCalled = true
	f.mu.Unlock()
	return f.closeErr
}
func (f *fakeServer) Addr() string { return f.addr }

func (f *fakeServer) calls() (listen, shutdown, closed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listenCalled, f.shutdownCalled, f.closeCalled
}

// signalAfterListen delivers the signal only once ListenAndServe has run,
// so Run() cannot take the signal branch before the server goroutine starts.
func signalAfterListen(fs *fakeServer, sigCh chan<- os.Signal) {
	go func() {
		<-fs.started
		sigCh <- os.Interrupt
	}()
}

func TestRun_BootstrapFail_Returns1(t *testing.T) {
	lg := zerolog.Nop()
	sigCh := make(chan os.Signal, 1)

	build := func() (httpServer, func(), error) {
		return nil, func() {}, errors.New("boom")
	}

	if got := Run(build, sigCh, lg); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestRun_OnSignal_ShutdownAndReturn0(t *testing.T) {
	lg := zerolog.Nop()
	sigCh := make(chan os.Signal, 1)

	fs := newFakeServer()
	fs.listenErr = http.ErrServerClosed // ListenAndServe returns this on normal shutdown
	signalAfterListen(fs, sigCh)

	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	got := Run(build, sigCh, lg)

	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	listen, shutdown, closed := fs.calls()
	if !listen {
		t.Fatalf("expected ListenAndServe called")
	}
	if !shutdown {
		t.Fatalf("expected Shutdown called")
	}
	if closed {
		t.Fatalf("did not expect Close called on graceful shutdown")
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup called")
	}
}

func TestRun_OnServerCrash_Return1(t *testing.T) {
	lg := zerolog.Nop()
	sigCh := make(chan os.Signal, 1)

	fs := newFakeServer()
	fs.listenErr = errors.New("crash")

	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	got := Run(build, sigCh, lg)

	if got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	listen, shutdown, _ := fs.calls()
	if !listen {
		t.Fatalf("expected ListenAndServe called")
	}
	// crash path does not call Shutdown/Close in current Run() design
	if shutdown {
		t.Fatalf("did not expect Shutdown called on crash path")
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup called")
	}
}

func TestRun_ShutdownFail_ForcesClose(t *testing.T) {
	lg := zerolog.Nop()
	sigCh := make(chan os.Signal, 1)

	fs := newFakeServer()
	fs.listenErr = http.ErrServerClosed
	fs.shutdownErr = errors.New("shutdown failed")
	signalAfterListen(fs, sigCh)

	build := func() (httpServer, func(), error) {
		return fs, func() {}, nil
	}

	got := Run(build, sigCh, lg)

	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	_, shutdown, closed := fs.calls()
	if !shutdown {
		t.Fatalf("expected Shutdown called")
	}
	if !closed {
		t.Fatalf("expected Close called when graceful shutdown fails")
	}
}
