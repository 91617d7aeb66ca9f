package web

import (
	"bytes"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/viewer"
	"github.com/KirkDiggler/strain-screen/internal/screen"
)

// handleIndex renders the lookup form. Arriving here through the go-back
// control unmounts the visitor's strain screen.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if id := sessionID(r); id != "" {
		if _, err := h.viewer.Leave(r.Context(), &viewer.LeaveInput{SessionID: id}); err != nil {
			slog.WarnContext(r.Context(), "failed to leave strain screen",
				"session_id", id,
				"error", err,
			)
		}
	}

	h.render(w, r, http.StatusOK, "index.html", indexPage{
		Races:   entities.KnownRaces(),
		Message: r.URL.Query().Get("message"),
	})
}

// handleLookup turns the lookup form into a strain route
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := entities.RouteParams{
		ID:   strings.TrimSpace(q.Get("id")),
		Name: strings.TrimSpace(q.Get("name")),
		Race: strings.TrimSpace(q.Get("race")),
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", params.ID, vb)
	errors.ValidateRequired("name", params.Name, vb)
	errors.ValidateRequired("race", params.Race, vb)
	if err := vb.Build(); err != nil {
		h.render(w, r, http.StatusBadRequest, "index.html", indexPage{
			Races:   entities.KnownRaces(),
			Message: errors.GetMessage(err),
		})
		return
	}

	http.Redirect(w, r, strainPath(params), http.StatusSeeOther)
}

// handleStrain mounts or re-navigates the visitor's screen and renders it
func (h *Handler) handleStrain(w http.ResponseWriter, r *http.Request) {
	params := routeParams(r)
	sid := h.ensureSession(w, r)

	out, err := h.viewer.Show(r.Context(), &viewer.ShowInput{
		SessionID: sid,
		Params:    params,
		WaitFor:   h.settle,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderStrain(w, r, out.Snapshot)
}

// handleRetry reloads the visitor's screen, then sends the browser back to it
func (h *Handler) handleRetry(w http.ResponseWriter, r *http.Request) {
	params := routeParams(r)
	target := strainPath(params)

	sid := sessionID(r)
	if sid == "" {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	_, err := h.viewer.Retry(r.Context(), &viewer.RetryInput{SessionID: sid})
	switch {
	case err == nil:
	case errors.IsNotFound(err), errors.GetCode(err) == errors.CodeFailedPrecondition:
		// nothing mounted; the strain page mounts a fresh screen
	default:
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) renderStrain(w http.ResponseWriter, r *http.Request, snap screen.Snapshot) {
	page := newStrainPage(snap, int(math.Ceil(h.refresh.Seconds())))

	status := http.StatusOK
	if page.Failed {
		status = snap.ErrorCode.HTTPStatus()
	}
	if page.Loading {
		w.Header().Set("Cache-Control", "no-store")
	}

	h.render(w, r, status, "strain.html", page)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errors.ToHTTPResponse(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "strain page failed",
			"path", r.URL.Path,
			"error", err,
		)
	}

	h.render(w, r, status, "error.html", body)
}

// render executes the template into a buffer so a template failure never
// leaves a half-written page
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "template error",
			"template", name,
			"error", err,
		)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w) // nolint:errcheck // client went away
}

// routeParams reads the strain route segments
func routeParams(r *http.Request) entities.RouteParams {
	return entities.RouteParams{
		ID:   pathParam(r, "id"),
		Name: pathParam(r, "name"),
		Race: pathParam(r, "race"),
	}
}

// pathParam returns a decoded route segment. chi hands back the raw
// segment when the path carries encoded slashes.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
