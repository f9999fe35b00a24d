package theme

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DetectsPaletteEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "black.css")
	require.NoError(t, os.WriteFile(path, []byte("@define-color window_bg_color #000000;"), 0644))

	w := NewWatcher(dir, nil)
	w.SetPollInterval(10 * time.Millisecond)

	var calls atomic.Int32
	w.SetChangeCallback(func() { calls.Add(1) })

	require.NoError(t, w.Start(t.Context()))
	defer w.Stop()
	assert.True(t, w.IsRunning())

	// Nothing changed yet
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, os.Remove(path))
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestWatcher_EmptyDirDisabled(t *testing.T) {
	w := NewWatcher("", nil)
	require.NoError(t, w.Start(t.Context()))
	assert.False(t, w.IsRunning())
	w.Stop()
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(t.TempDir(), nil)
	require.NoError(t, w.Start(t.Context()))
	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
}
