package store

import (
	"context"
	"testing"
	"time"
)

func TestDiskvWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := OpenDiskv(base)
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Set("terminal_lockout", "1700000000000"); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key != "terminal_lockout" {
				t.Fatalf("expected key 'terminal_lockout', got %q", evt.Key)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestDiskvWatchClosesOnCancel(t *testing.T) {
	p, err := OpenDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func TestKeyForPathSkipsTempAndNested(t *testing.T) {
	p := &Diskv{basePath: "/tmp/folio"}
	cases := map[string]string{
		"/tmp/folio/terminal_lockout": "terminal_lockout",
		"/tmp/folio/diskv-123":        "",
		"/tmp/folio/.hidden":          "",
		"/tmp/folio/a/b":              "",
		"/tmp/folio":                  "",
	}
	for in, want := range cases {
		if got := p.keyForPath(in); got != want {
			t.Errorf("keyForPath(%q) = %q, want %q", in, got, want)
		}
	}
}
