package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestFileWatcher_TriggersReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("storage:\n  backend: memory\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fw, err := NewFileWatcher(configPath, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(configPath, []byte("storage:\n  backend: sqlite\n  sqlite_path: x.db\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for reloads.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for reload callback")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after context cancel")
	}
}

func TestFileWatcher_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("storage:\n  backend: memory\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fw, err := NewFileWatcher(configPath, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	go func() {
		_ = fw.Watch(ctx, func() error {
			reloads.Add(1)
			return nil
		})
	}()

	time.Sleep(50 * time.Millisecond)

	otherPath := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(otherPath, []byte("unrelated"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := reloads.Load(); n != 0 {
		t.Errorf("expected no reloads for unrelated file, got %d", n)
	}
}

func TestFileWatcher_StopBeforeWatch(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("storage:\n  backend: memory\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fw, err := NewFileWatcher(configPath, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	// Stop on a watcher that never started is a no-op.
	if err := fw.Stop(); err != nil {
		t.Errorf("expected nil from Stop before Watch, got: %v", err)
	}
}

func TestDebouncer_CollapsesRapidEvents(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 callback after rapid triggers, got %d", n)
	}
}
