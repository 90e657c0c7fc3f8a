package handlers

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"things_future/scenario"
	"things_future/session"
	"things_future/templates"
	"things_future/words"
)

// CookieName carries the session ID.
const CookieName = "tff_session"

// Handler serves the card page, its htmx fragments and the JSON API.
type Handler struct {
	Manager     *session.Manager
	Writer      *scenario.Writer
	Logger      *zap.SugaredLogger
	Title       string
	ShareURL    string
	WordsSource string
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /", h.Index)
	mux.HandleFunc("POST /generate", h.Generate)
	mux.HandleFunc("POST /generate/{category}", h.GenerateOne)
	mux.HandleFunc("GET /history", h.History)
	mux.HandleFunc("POST /history/{id}/restore", h.Restore)
	mux.HandleFunc("POST /reload", h.Reload)
	mux.HandleFunc("GET /share/qr.png", h.ShareQR)

	mux.HandleFunc("GET /api/state", h.State)
	mux.HandleFunc("POST /api/regenerate", h.APIRegenerate)
	mux.HandleFunc("POST /api/regenerate/{category}", h.APIRegenerateOne)
	mux.HandleFunc("GET /api/history", h.APIHistory)
	mux.HandleFunc("POST /api/history/{id}/restore", h.APIRestore)
	mux.HandleFunc("GET /api/history.pdf", h.HistoryPDF)
	mux.HandleFunc("GET /api/words", h.Words)
	mux.HandleFunc("PUT /api/words", h.ReplaceWords)
	mux.HandleFunc("POST /api/words/reset", h.ResetWords)
	mux.HandleFunc("GET /api/words/export", h.ExportWords)
	mux.HandleFunc("POST /api/words/import", h.ImportWords)
	mux.HandleFunc("POST /api/reload", h.APIReload)
	mux.HandleFunc("GET /api/share", h.Share)
	mux.HandleFunc("POST /api/scenario", h.Scenario)
}

// session finds the caller's session from the cookie, starting a new one when
// the cookie is missing or expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}

	sess, created, err := h.Manager.GetOrCreate(id)
	if err != nil {
		return nil, err
	}
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Errorw("Request failed", "path", r.URL.Path, "error", err)
	} else {
		h.Logger.Debugw("Request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, err.Error())
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sess, err := h.session(w, r)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		templates.LoadError(h.Title, h.Manager.LoadErr()).Render(r.Context(), w)
		return
	}
	templates.Index(h.Title, sess.Snapshot(), h.ShareURL).Render(r.Context(), w)
}

// Generate regenerates the whole card and returns the cards fragment.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	started := time.Now()
	if _, err := sess.RegenerateAll(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Debugw("Card regenerated", "session", sess.ID, "took", time.Since(started))
	templates.SwappedCards(sess.Snapshot()).Render(r.Context(), w)
}

// GenerateOne redraws one category and returns that card.
func (h *Handler) GenerateOne(w http.ResponseWriter, r *http.Request) {
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
	templates.Card(c, word).Render(r.Context(), w)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	templates.HistoryList(sess.History()).Render(r.Context(), w)
}

// Restore shows a past prompt again and returns the cards fragment.
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := sess.Restore(r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	templates.Cards(sess.Snapshot()).Render(r.Context(), w)
}

// Reload retries loading the word source from the failure page.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.Manager.Load(r.Context(), h.WordsSource); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		templates.LoadError(h.Title, err).Render(r.Context(), w)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
