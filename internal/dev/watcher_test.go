package dev

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"
)

// waitForChange rewrites target until a change containing it is reported.
func waitForChange(t *testing.T, changes <-chan Change, target string) Change {
	t.Helper()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case change := <-changes:
			if slices.Contains(change.Paths, target) {
				return change
			}
		case <-tick.C:
			if err := os.WriteFile(target, []byte("package views\n"), 0644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatalf("no change reported for %s", target)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	w := NewWatcher(WatcherConfig{Paths: []string{dir}, Debounce: 20 * time.Millisecond})

	changes := make(chan Change, 16)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	waitForChange(t, changes, filepath.Join(dir, "about.go"))

	// Directories created after start are watched too.
	nested := filepath.Join(dir, "users")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	waitForChange(t, changes, filepath.Join(nested, "[id].go"))

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	if w.IsRunning() {
		t.Error("watcher still running after cancel")
	}
}

func TestWatcherStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w := NewWatcher(WatcherConfig{Paths: []string{t.TempDir()}})
	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	deadline := time.Now().Add(5 * time.Second)
	for !w.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("watcher did not start")
		}
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want nil after Stop", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherRelevant(t *testing.T) {
	views := filepath.Join(t.TempDir(), "views")
	manifest := filepath.Join(t.TempDir(), "routes.yaml")
	w := NewWatcher(WatcherConfig{Paths: []string{views}, Files: []string{manifest}})

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"go file written", fsnotify.Event{Name: filepath.Join(views, "about.go"), Op: fsnotify.Write}, true},
		{"go file created", fsnotify.Event{Name: filepath.Join(views, "a", "b.go"), Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(views, "about.go"), Op: fsnotify.Chmod}, false},
		{"test file", fsnotify.Event{Name: filepath.Join(views, "about_test.go"), Op: fsnotify.Write}, false},
		{"other extension", fsnotify.Event{Name: filepath.Join(views, "notes.txt"), Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: filepath.Join(views, ".about.go.swp"), Op: fsnotify.Write}, false},
		{"removed directory", fsnotify.Event{Name: filepath.Join(views, "users"), Op: fsnotify.Remove}, true},
		{"written extensionless file", fsnotify.Event{Name: filepath.Join(views, "LICENSE"), Op: fsnotify.Write}, false},
		{"outside tree", fsnotify.Event{Name: filepath.Join(filepath.Dir(views), "main.go"), Op: fsnotify.Write}, false},
		{"manifest", fsnotify.Event{Name: manifest, Op: fsnotify.Write}, true},
		{"manifest sibling", fsnotify.Event{Name: filepath.Join(filepath.Dir(manifest), "other.yaml"), Op: fsnotify.Write}, false},
		{"ignored segment", fsnotify.Event{Name: filepath.Join(views, "node_modules", "x.go"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(nil, tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestShouldIgnore(t *testing.T) {
	w := NewWatcher(WatcherConfig{Ignore: []string{"*_test.go", ".git", "build/cache", "gen/*.go"}})

	tests := []struct {
		path string
		want bool
	}{
		{"/p/views/about_test.go", true},
		{"/p/.git/HEAD", true},
		{"/p/build/cache/x.go", true},
		{"gen/a.go", true},
		{"/p/views/about.go", false},
		{"/p/build/x.go", false},
	}
	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
