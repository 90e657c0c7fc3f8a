package words

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Word": "a", "Category": "future"}]`), 0o644))

	reloaded := make(chan Catalog, 4)
	w, err := NewWatcher(path, func(c Catalog, _ Report) { reloaded <- c }, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	w.debouncePeriod = 10 * time.Millisecond
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte(`[{"Word": "b", "Category": "thing"}]`), 0o644))

	select {
	case c := <-reloaded:
		assert.Equal(t, []string{"B"}, c.Words(Thing))
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	require.NoError(t, w.Stop())
}

func TestWatcher_IgnoresBrokenFileAndOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Word": "a", "Category": "future"}]`), 0o644))

	reloaded := make(chan Catalog, 4)
	w, err := NewWatcher(path, func(c Catalog, _ Report) { reloaded <- c }, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	w.debouncePeriod = 10 * time.Millisecond
	w.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	select {
	case <-reloaded:
		t.Fatal("unexpected reload")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, w.Stop())
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "words.json"), func(Catalog, Report) {}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
