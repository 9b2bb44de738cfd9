package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcher_Creation(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	require.NotNil(t, w)
	require.NoError(t, w.Close())
}

func TestWatcher_ReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "app.json")
	writeFile(t, input, `{"a": 1}`)

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	rec := &recorder{}
	w.OnChange(rec.record)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Watch(ctx, input))

	time.Sleep(100 * time.Millisecond)
	writeFile(t, input, `{"a": 2}`)

	require.Eventually(t, func() bool { return len(rec.seen()) > 0 }, 2*time.Second, 20*time.Millisecond)
	abs, err := filepath.Abs(input)
	require.NoError(t, err)
	assert.Equal(t, abs, rec.seen()[0])
}

func TestWatcher_ReplacedFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "app.yaml")
	writeFile(t, input, "a: 1\n")

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	rec := &recorder{}
	w.OnChange(rec.record)
	require.NoError(t, w.Watch(context.Background(), input))

	time.Sleep(100 * time.Millisecond)
	tmp := filepath.Join(dir, "app.yaml.swp")
	writeFile(t, tmp, "a: 2\n")
	require.NoError(t, os.Rename(tmp, input))

	require.Eventually(t, func() bool { return len(rec.seen()) > 0 }, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "app.json")
	writeFile(t, input, `{}`)

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	rec := &recorder{}
	w.OnChange(rec.record)
	require.NoError(t, w.Watch(context.Background(), input))

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.json"), `{}`)
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, rec.seen())
}

func TestWatcher_StopsAfterContextCancel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "app.json")
	writeFile(t, input, `{}`)

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	rec := &recorder{}
	w.OnChange(rec.record)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Watch(ctx, input))
	cancel()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, input, `{"a": 1}`)
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, rec.seen())
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)

	require.NoError(t, w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing.json")))
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
