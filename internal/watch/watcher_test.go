package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/uibuilder/internal/config"
)

const testDebounce = 50 * time.Millisecond

func testPaths(t *testing.T) config.Paths {
	t.Helper()
	root := t.TempDir()
	paths := config.Default().ResolvePaths(root)
	require.NoError(t, os.MkdirAll(filepath.Join(paths.FrontendDir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.FrontendDir, "src", "index.ts"), []byte("export {}\n"), 0o644))
	return paths
}

// startWatcher runs w.Run in the background and returns a cancel func that
// also waits for Run to return.
func startWatcher(t *testing.T, paths config.Paths, build BuildFunc) context.CancelFunc {
	t.Helper()
	w, err := New(paths, build, WithDebounce(testDebounce))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, w.Run(ctx))
	}()
	return func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Errorf("watcher did not stop")
		}
	}
}

func waitForCount(t *testing.T, counter *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if counter.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d builds, got %d", want, counter.Load())
}

func TestWatcherBuildsOnStartAndOnChange(t *testing.T) {
	paths := testPaths(t)

	var builds atomic.Int32
	stop := startWatcher(t, paths, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	defer stop()

	waitForCount(t, &builds, 1) // initial build

	require.NoError(t, os.WriteFile(filepath.Join(paths.FrontendDir, "src", "index.ts"), []byte("export const x = 1\n"), 0o644))
	waitForCount(t, &builds, 2)
}

func TestWatcherCoalescesEventBursts(t *testing.T) {
	paths := testPaths(t)

	var builds atomic.Int32
	stop := startWatcher(t, paths, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	defer stop()

	waitForCount(t, &builds, 1)

	// A burst of writes inside one debounce window collapses to one rebuild.
	for i := range 5 {
		name := filepath.Join(paths.FrontendDir, "src", "index.ts")
		require.NoError(t, os.WriteFile(name, []byte{byte('a' + i)}, 0o644))
		time.Sleep(5 * time.Millisecond)
	}
	waitForCount(t, &builds, 2)

	// Give a stray second rebuild time to happen, then ensure it did not.
	time.Sleep(4 * testDebounce)
	assert.Equal(t, int32(2), builds.Load(), "burst must coalesce into a single rebuild")
}

func TestWatcherIgnoresOutputAndDependencies(t *testing.T) {
	paths := testPaths(t)

	var builds atomic.Int32
	stop := startWatcher(t, paths, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	defer stop()

	waitForCount(t, &builds, 1)

	// Churn in the output directory and node_modules must not retrigger,
	// otherwise every build would schedule the next one.
	require.NoError(t, os.MkdirAll(paths.OutputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.OutputDir, "bundle.js"), []byte("//"), 0o644))
	require.NoError(t, os.MkdirAll(paths.ModulesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(paths.ModulesDir, "pkg.json"), []byte("{}"), 0o644))

	time.Sleep(6 * testDebounce)
	assert.Equal(t, int32(1), builds.Load(), "output and dependency churn must be ignored")
}

func TestWatcherBuildsAreSequential(t *testing.T) {
	paths := testPaths(t)

	var builds, inFlight atomic.Int32
	var overlapped atomic.Bool
	stop := startWatcher(t, paths, func(context.Context) error {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		defer inFlight.Add(-1)
		time.Sleep(3 * testDebounce)
		builds.Add(1)
		return nil
	})
	defer stop()

	// Keep changing files while builds are slow.
	for i := range 6 {
		name := filepath.Join(paths.FrontendDir, "src", "index.ts")
		require.NoError(t, os.WriteFile(name, []byte{byte('0' + i)}, 0o644))
		time.Sleep(testDebounce)
	}

	waitForCount(t, &builds, 2)
	assert.False(t, overlapped.Load(), "builds must never overlap")
}

func TestWatcherKeepsRunningAfterFailedBuild(t *testing.T) {
	paths := testPaths(t)

	var builds atomic.Int32
	stop := startWatcher(t, paths, func(context.Context) error {
		builds.Add(1)
		return assert.AnError
	})
	defer stop()

	waitForCount(t, &builds, 1)

	require.NoError(t, os.WriteFile(filepath.Join(paths.FrontendDir, "src", "index.ts"), []byte("x"), 0o644))
	waitForCount(t, &builds, 2)
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	paths := testPaths(t)

	var builds atomic.Int32
	stop := startWatcher(t, paths, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	defer stop()

	waitForCount(t, &builds, 1)

	newDir := filepath.Join(paths.FrontendDir, "src", "components")
	require.NoError(t, os.MkdirAll(newDir, 0o755))
	waitForCount(t, &builds, 2)

	// Files inside the new directory are watched too.
	require.NoError(t, os.WriteFile(filepath.Join(newDir, "app.tsx"), []byte("//"), 0o644))
	waitForCount(t, &builds, 3)
}

func TestWatcherRequiresBuildFunc(t *testing.T) {
	_, err := New(config.Default().ResolvePaths(t.TempDir()), nil)
	require.Error(t, err)
}

func TestIgnoredPaths(t *testing.T) {
	paths := config.Default().ResolvePaths(filepath.Join(string(filepath.Separator), "pkg"))
	w := &Watcher{paths: paths}

	join := func(parts ...string) string {
		return filepath.Join(append([]string{paths.FrontendDir}, parts...)...)
	}

	assert.False(t, w.ignored(join("src", "index.ts")))
	assert.False(t, w.ignored(join("package.json")))
	assert.False(t, w.ignored(paths.FrontendDir))

	assert.True(t, w.ignored(paths.OutputDir))
	assert.True(t, w.ignored(join("build", "bundle.js")))
	assert.True(t, w.ignored(join("node_modules")))
	assert.True(t, w.ignored(join("node_modules", "react", "index.js")))
	assert.True(t, w.ignored(join(".cache", "entry")))
	assert.True(t, w.ignored(join("src", ".index.ts.swp")))
	assert.True(t, w.ignored(filepath.Join(string(filepath.Separator), "pkg", "outside.txt")))
}
