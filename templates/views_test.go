package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"things_future/session"
	"things_future/words"
)

func TestIndex(t *testing.T) {
	snap := session.Snapshot{
		Selection: session.Selection{words.Future: "SOLAR", words.Thing: "<KITE>", words.Theme: "FOOD"},
		Status:    session.Idle,
	}

	var buf bytes.Buffer
	require.NoError(t, Index("Things from the future", snap, "https://example.com/?a=1&b=2").Render(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, "<title>Things from the future</title>")
	assert.Contains(t, out, "SOLAR")
	assert.Contains(t, out, "&lt;KITE&gt;")
	assert.NotContains(t, out, "<KITE>")
	assert.Contains(t, out, `hx-post="/generate/theme"`)
	assert.Contains(t, out, "a=1&amp;b=2")
	assert.Contains(t, out, `data-status="idle"`)
	assert.Contains(t, out, `aria-label="Energy Future"`)
	assert.Contains(t, out, `title="Generate new Focus Area word"`)
	assert.NotContains(t, out, "animate-pop-in")
}

func TestCards_Animating(t *testing.T) {
	var buf bytes.Buffer
	snap := session.Snapshot{Selection: session.Selection{}, Status: session.Drawing, Animating: true}
	require.NoError(t, Cards(snap).Render(context.Background(), &buf))

	assert.Contains(t, buf.String(), "animate-pop-in")
	assert.Contains(t, buf.String(), `data-status="drawing"`)
}

func TestSwappedCards_PopIn(t *testing.T) {
	var buf bytes.Buffer
	snap := session.Snapshot{Selection: session.Selection{words.Future: "SOLAR", words.Thing: "KITE", words.Theme: "FOOD"}, Status: session.Idle}
	require.NoError(t, SwappedCards(snap).Render(context.Background(), &buf))

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "animate-pop-in"))
	assert.Contains(t, out, `data-status="idle"`)

	buf.Reset()
	require.NoError(t, Cards(snap).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "animate-pop-in")
}

func TestHistoryList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HistoryList(nil).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No Past Prompts Yet")

	buf.Reset()
	recs := []session.Record{{ID: "01ABC", Future: "SOLAR", Thing: "KITE", Theme: "FOOD", CreatedAt: time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC)}}
	require.NoError(t, HistoryList(recs).Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, `hx-post="/history/01ABC/restore"`)
	assert.Contains(t, out, "Jan 1, 2026 at 08:30")
	assert.NotContains(t, out, "No Past Prompts Yet")
}

func TestLoadError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, LoadError("T", errors.New("read ./static/x.json: no such file")).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "Failed to load words")
	assert.Contains(t, buf.String(), "no such file")
	assert.Contains(t, buf.String(), `action="/reload"`)
}
