package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlop3z/osql/internal/testutil"
)

func TestWatchRerendersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.yaml")
	testutil.WriteFile(t, path, "tables:\n  - name: t\n    columns:\n      - name: id\n")

	var stdout bytes.Buffer
	a := newApp(&stdout, io.Discard)
	a.logger = discardLogger()

	renders := make(chan struct{}, 16)
	render := func() error {
		renders <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, []string{path}, render) }()

	waitRender := func() {
		t.Helper()
		select {
		case <-renders:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for render")
		}
	}

	waitRender()
	testutil.WriteFile(t, path, "tables:\n  - name: t\n    columns:\n      - name: id\n      - name: v\n")
	waitRender()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, stdout.String(), "-- t.yaml changed")
}

func TestWatchReportsRenderErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	testutil.WriteFile(t, path, "tables: []\n")

	var stderr bytes.Buffer
	a := newApp(io.Discard, &stderr)
	a.logger = discardLogger()

	ctx, cancel := context.WithCancel(context.Background())
	called := make(chan struct{}, 1)
	render := func() error {
		called <- struct{}{}
		return errors.New("broken schema")
	}

	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, []string{path}, render) }()

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for render")
	}
	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, stderr.String(), "broken schema")
}
