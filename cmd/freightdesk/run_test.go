package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type fakeApp struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	stopped  bool
}

func (a *fakeApp) Start(context.Context) error { return a.startErr }

func (a *fakeApp) Stop(context.Context) error {
	a.stopped = true
	return a.stopErr
}

func (a *fakeApp) Done() <-chan os.Signal { return a.done }

func TestRunStopsOnContextCancel(t *testing.T) {
	app := &fakeApp{done: make(chan os.Signal)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	if code := run(ctx, app, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}
	if !app.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestRunStopsOnDoneSignal(t *testing.T) {
	app := &fakeApp{done: make(chan os.Signal, 1)}
	app.done <- os.Interrupt

	if code := run(context.Background(), app, &bytes.Buffer{}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunReportsFailures(t *testing.T) {
	var stderr bytes.Buffer
	app := &fakeApp{startErr: errors.New("no database"), done: make(chan os.Signal)}
	if code := run(context.Background(), app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no database") {
		t.Fatalf("expected start error to be printed, got %q", stderr.String())
	}
	if app.stopped {
		t.Fatal("stop must not be called when start fails")
	}

	stderr.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app = &fakeApp{stopErr: errors.New("drain timeout"), done: make(chan os.Signal)}
	if code := run(ctx, app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "drain timeout") {
		t.Fatalf("expected stop error to be printed, got %q", stderr.String())
	}
}
