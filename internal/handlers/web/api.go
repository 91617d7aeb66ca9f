package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/orchestrators/strain"
)

const healthCheckTimeout = 2 * time.Second

// StrainResponse is the JSON body of GET /api/v1/strains/{id}
type StrainResponse struct {
	*entities.StrainView
	FromCache bool       `json:"from_cache"`
	CachedAt  *time.Time `json:"cached_at,omitempty"`
}

// HealthResponse is the JSON body of GET /healthz
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) handleGetStrain(w http.ResponseWriter, r *http.Request) {
	input := &strain.LoadStrainInput{StrainID: pathParam(r, "id")}
	if fresh := r.URL.Query().Get("fresh"); fresh != "" {
		skip, err := strconv.ParseBool(fresh)
		if err != nil {
			errors.WriteHTTPError(w, errors.InvalidArgumentf("fresh must be a boolean, got %q", fresh))
			return
		}
		input.SkipCache = skip
	}

	out, err := h.loader.LoadStrain(r.Context(), input)
	if err != nil {
		h.logAPIError(r, err)
		errors.WriteHTTPError(w, err)
		return
	}

	resp := StrainResponse{StrainView: out.View, FromCache: out.FromCache}
	if out.FromCache {
		cachedAt := out.CachedAt
		resp.CachedAt = &cachedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleInvalidateStrain(w http.ResponseWriter, r *http.Request) {
	out, err := h.loader.InvalidateStrain(r.Context(), &strain.InvalidateStrainInput{StrainID: pathParam(r, "id")})
	if err != nil {
		h.logAPIError(r, err)
		errors.WriteHTTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"evicted": out.Evicted})
}

// handleHealth runs every configured check concurrently
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if len(h.healthChecks) == 0 {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	names := make([]string, 0, len(h.healthChecks))
	for name := range h.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	var g errgroup.Group
	for i, name := range names {
		i := i // per-iteration copy; go.mod targets go1.21 (pre-1.22 loop semantics)
		check := h.healthChecks[name]
		g.Go(func() error {
			results[i] = check(ctx)
			return nil
		})
	}
	_ = g.Wait() // nolint:errcheck // checks report through results

	resp.Checks = make(map[string]string, len(names))
	status := http.StatusOK
	for i, name := range names {
		if results[i] != nil {
			resp.Checks[name] = results[i].Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			slog.WarnContext(r.Context(), "health check failed",
				"check", name,
				"error", results[i],
			)
			continue
		}
		resp.Checks[name] = "ok"
	}

	writeJSON(w, status, resp)
}

func (h *Handler) logAPIError(r *http.Request, err error) {
	code := errors.GetCode(err)
	if code.HTTPStatus() < http.StatusInternalServerError {
		return
	}
	slog.ErrorContext(r.Context(), "api request failed",
		"path", r.URL.Path,
		"code", code.String(),
		"error", err,
	)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) // nolint:errcheck // client went away
}
