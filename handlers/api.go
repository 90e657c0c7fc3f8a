package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/cockroachdb/errors"

	"things_future/session"
	"things_future/words"
)

const maxUpload = 1 << 20

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *Handler) APIRegenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sel, err := sess.RegenerateAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"selection": sel,
		"sentence":  sel.Sentence(),
	})
}

func (h *Handler) APIRegenerateOne(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c, ok := words.ParseCategory(r.PathValue("category"))
	if !ok {
		h.fail(w, r, errors.Wrapf(session.ErrUnknownCategory, "%q", r.PathValue("category")))
		return
	}
	word, err := sess.RegenerateOne(r.Context(), c)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"category": string(c), "word": word})
}

func (h *Handler) APIHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess.History())
}

func (h *Handler) APIRestore(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sel, err := sess.Restore(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"selection": sel})
}

type wordsResponse struct {
	Words  map[string][]string    `json:"words"`
	Counts map[words.Category]int `json:"counts"`
}

func wordsBody(c words.Catalog) wordsResponse {
	return wordsResponse{Words: c.Lists(), Counts: c.Counts()}
}

// Words returns the session's word lists and per-category counts.
func (h *Handler) Words(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wordsBody(sess.Catalog()))
}

// ReplaceWords saves edited word lists, {"future": [...], "thing": [...], "theme": [...]}.
func (h *Handler) ReplaceWords(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var lists map[string][]string
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUpload)).Decode(&lists); err != nil {
		h.fail(w, r, badInput(err, "decode word lists"))
		return
	}
	cat := words.FromLists(lists)
	sess.ReplaceWords(cat)
	h.Logger.Infow("Words replaced", "session", sess.ID, "total", cat.Total())
	h.writeJSON(w, http.StatusOK, wordsBody(sess.Catalog()))
}

// ResetWords puts the loaded default words back.
func (h *Handler) ResetWords(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defaults, err := h.Manager.Defaults()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess.ReplaceWords(defaults)
	h.writeJSON(w, http.StatusOK, wordsBody(sess.Catalog()))
}

// ExportWords downloads the session's words as CSV.
func (h *Handler) ExportWords(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="things-words.csv"`)
	if err := words.WriteCSV(w, sess.Catalog()); err != nil {
		h.Logger.Errorw("Failed to write csv", "error", err)
	}
}

// ImportWords replaces the session's words from CSV, sent either as the raw
// body or as the "file" field of a multipart form.
func (h *Handler) ImportWords(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var body io.Reader = io.LimitReader(r.Body, maxUpload)
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			h.fail(w, r, badInput(err, "read upload"))
			return
		}
		defer file.Close()
		body = io.LimitReader(file, maxUpload)
	}

	cat, err := words.ReadCSV(body)
	if err != nil {
		h.fail(w, r, badInput(err, "import csv"))
		return
	}
	sess.ReplaceWords(cat)
	h.Logger.Infow("Words imported", "session", sess.ID, "total", cat.Total())
	h.writeJSON(w, http.StatusOK, wordsBody(sess.Catalog()))
}

// APIReload retries loading the default word source.
func (h *Handler) APIReload(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.Load(r.Context(), h.WordsSource); err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.Manager.Report())
}

func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"url": h.ShareURL})
}

// Scenario asks the model to imagine the object on the current card.
func (h *Handler) Scenario(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sc, err := h.Writer.Write(r.Context(), sess.Selection())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sc)
}
