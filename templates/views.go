// Package templates renders the card page and its htmx fragments.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"things_future/session"
	"things_future/words"
)

// pageWriter stops writing after the first error so components can write
// straight through and report once.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *pageWriter) render(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

var esc = templ.EscapeString[string]

func head(p *pageWriter, title string) {
	p.printf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://cdn.tailwindcss.com"></script>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="stylesheet" href="/static/app.css">
</head>
`, esc(title))
}

// Index is the full card page.
func Index(title string, snap session.Snapshot, shareURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		head(p, title)
		p.printf(`<body class="min-h-screen paper-bg p-1 sm:p-4 lg:p-8 relative">
<a href="/share/qr.png" data-share-url="%s" class="fixed top-4 left-4 z-40 bg-white p-3 rounded-full shadow-lg border border-gray-200" title="Share">Share</a>
<a href="/api/words/export" class="fixed top-4 right-4 z-40 bg-white p-3 rounded-full shadow-lg border border-gray-200" title="Download words">Words</a>
<div class="max-w-6xl mx-auto">
<div class="text-center mb-4 sm:mb-8 p-4 sm:p-6"><h1 class="text-xl sm:text-4xl font-bold text-black">%s</h1></div>
`, esc(shareURL), esc(title))
		p.render(ctx, Cards(snap))
		p.printf(`<div class="flex flex-col sm:flex-row gap-2 sm:gap-4 justify-center items-center mb-4 sm:mb-8 px-4">
<button hx-post="/generate" hx-target="#cards" hx-swap="outerHTML" hx-disabled-elt="this" class="rainbow-btn" style="height: 60px; min-width: 180px"><span class="px-6 py-3">Generate</span></button>
<button hx-get="/history" hx-target="#history" hx-swap="outerHTML" class="bg-white text-gray-700 px-6 py-3 rounded-lg font-semibold shadow-lg border border-gray-200">Past Prompts</button>
<a href="/api/history.pdf" class="bg-white text-gray-700 px-6 py-3 rounded-lg font-semibold shadow-lg border border-gray-200">Print History</a>
</div>
<div id="history"></div>
</div>
</body>
</html>
`)
		return p.err
	})
}

// Cards renders the three word cards. It is also the target of regeneration.
func Cards(snap session.Snapshot) templ.Component {
	return cards(snap, snap.Animating)
}

// SwappedCards renders cards whose words were just replaced by a full
// regeneration, so they pop in as they are swapped into the page.
func SwappedCards(snap session.Snapshot) templ.Component {
	return cards(snap, true)
}

func cards(snap session.Snapshot, popIn bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		animating := ""
		if popIn {
			animating = " animate-pop-in"
		}
		p.printf(`<div id="cards" data-status="%s" class="grid grid-cols-1 md:grid-cols-3 gap-4 sm:gap-6 mb-4 sm:mb-8">
`, esc(snap.Status.String()))
		for _, c := range words.Categories {
			p.render(ctx, card(c, snap.Selection[c], animating))
		}
		p.printf("</div>\n")
		return p.err
	})
}

func card(c words.Category, word, extra string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		style := GetCardStyle(c)
		trail := esc(style.Trail)
		trailClass := ""
		if style.Trail == "" {
			trail, trailClass = "placeholder", " invisible"
		}
		p.printf(`<div id="card-%[1]s" aria-label="%[10]s" class="bg-gradient-to-br %[2]s rounded-xl sm:rounded-3xl p-2 sm:p-4 text-white shadow-2xl relative">
<button hx-post="/generate/%[1]s" hx-target="#card-%[1]s" hx-swap="outerHTML" class="absolute top-3 right-3 z-10 p-3 text-white bg-black/20 rounded-full" title="Generate new %[10]s word">&#8635;</button>
<div class="h-full flex flex-col text-center">
<div class="text-2xl font-medium opacity-90 mb-2">%[3]s</div>
<div class="bg-white rounded-lg sm:rounded-2xl py-2 px-1 flex-1 flex items-center justify-center shadow-lg my-2">
<div class="%[4]s font-bold %[5]s leading-tight break-words%[6]s">%[7]s</div>
</div>
<div class="text-2xl font-medium opacity-90%[8]s">%[9]s</div>
</div>
</div>
`, esc(string(c)), esc(style.Gradient), esc(style.Lead), WordSize(word), esc(style.Accent), extra, esc(word), trailClass, trail, esc(c.Label()))
		return p.err
	})
}

// Card renders a single category card, for single-word regeneration.
func Card(c words.Category, word string) templ.Component {
	return card(c, word, "")
}

// HistoryList renders past prompts, newest first. Clicking one restores it.
func HistoryList(records []session.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		p.printf(`<div id="history" class="bg-white rounded-3xl shadow-xl border border-gray-200 overflow-hidden">
<div class="p-6 border-b border-gray-200"><h2 class="text-xl font-bold text-gray-800">Past Prompts</h2></div>
<div class="p-6">
`)
		if len(records) == 0 {
			p.printf(`<div class="text-center py-8"><h3 class="text-lg font-semibold text-gray-600 mb-2">No Past Prompts Yet</h3><p class="text-gray-500">Generate some prompts to see your history here!</p></div>
`)
		}
		for _, r := range records {
			p.printf(`<div class="bg-gray-50 rounded-xl p-4 mb-3 cursor-pointer border border-gray-100" hx-post="/history/%s/restore" hx-target="#cards" hx-swap="outerHTML">
<div class="text-base leading-relaxed mb-2">In a <span class="bg-green-500 text-white px-2 py-1 rounded-lg font-semibold text-sm">%s</span> future, there is a <span class="bg-red-500 text-white px-2 py-1 rounded-lg font-semibold text-sm">%s</span> related to <span class="bg-blue-500 text-white px-2 py-1 rounded-lg font-semibold text-sm">%s</span>.</div>
<div class="text-xs text-gray-500">%s</div>
</div>
`, esc(r.ID), esc(r.Future), esc(r.Thing), esc(r.Theme), esc(FormatTimestamp(r.CreatedAt)))
		}
		p.printf("</div>\n</div>\n")
		return p.err
	})
}

// LoadError is the page shown when no words could be loaded.
func LoadError(title string, reason error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &pageWriter{w: w}
		head(p, title)
		msg := "unknown error"
		if reason != nil {
			msg = reason.Error()
		}
		p.printf(`<body class="min-h-screen bg-gradient-to-br from-slate-100 to-slate-200 flex items-center justify-center">
<div class="text-center">
<p class="text-lg text-gray-600 mb-2">Failed to load words</p>
<p class="text-sm text-gray-500 mb-4">%s</p>
<form method="post" action="/reload"><button type="submit" class="bg-indigo-600 hover:bg-indigo-700 text-white px-4 py-2 rounded-lg">Retry</button></form>
</div>
</body>
</html>
`, esc(msg))
		return p.err
	})
}
