// Package dashboard exposes the portal collections as the JSON API consumed by the
// admin dashboard.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"districtportal/internal/collection"
	"districtportal/internal/core"
	"districtportal/internal/observability"
	"districtportal/pkg/domain"
)

const maxBodyBytes = 1 << 20

// entityService is the per-kind surface the handlers need. *core.Collection
// satisfies it for every kind.
type entityService[E any] interface {
	Create(ctx context.Context, draft E) (E, error)
	Update(ctx context.Context, id string, draft E) (E, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(id string) (E, bool)
	Query(criteria collection.Criteria) []E
	Stats() collection.Stats
}

// Handler routes dashboard API requests to the portal service.
type Handler struct {
	svc    *core.Service
	logger observability.Logger
}

// NewHandler constructs a dashboard handler. A nil logger discards messages.
func NewHandler(svc *core.Service, logger observability.Logger) *Handler {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Handler{svc: svc, logger: logger}
}

// Mount registers the /api/v1 routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", h.handleSummary)
		mountKind[domain.Announcement](r, h, domain.KindAnnouncement, h.svc.Announcements())
		mountKind[domain.AssistanceInfo](r, h, domain.KindAssistanceInfo, h.svc.Assistance())
		mountKind[domain.VotingCenter](r, h, domain.KindVotingCenter, h.svc.VotingCenters())
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, _ *http.Request) {
	summary := h.svc.Summary()
	out := make(map[string]collection.Stats, len(summary))
	for kind, stats := range summary {
		out[string(kind)] = stats
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": out})
}

func mountKind[E any](r chi.Router, h *Handler, kind domain.Kind, svc entityService[E]) {
	r.Route("/"+string(kind), func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			criteria, err := criteriaFromQuery(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"items": svc.Query(criteria)})
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var draft E
			if !decodeBody(w, r, &draft) {
				return
			}
			created, err := svc.Create(r.Context(), draft)
			if err != nil {
				h.writeServiceError(w, kind, err)
				return
			}
			writeJSON(w, http.StatusCreated, created)
		})

		r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"stats": svc.Stats()})
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			entity, ok := svc.Get(chi.URLParam(r, "id"))
			if !ok {
				writeError(w, http.StatusNotFound, string(kind)+" entity not found")
				return
			}
			writeJSON(w, http.StatusOK, entity)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var draft E
			if !decodeBody(w, r, &draft) {
				return
			}
			updated, err := svc.Update(r.Context(), chi.URLParam(r, "id"), draft)
			if err != nil {
				h.writeServiceError(w, kind, err)
				return
			}
			writeJSON(w, http.StatusOK, updated)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			removed, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				h.writeServiceError(w, kind, err)
				return
			}
			if !removed {
				writeError(w, http.StatusNotFound, string(kind)+" entity not found")
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

// criteriaFromQuery reads search and fuzzy; every other parameter is an equality filter.
func criteriaFromQuery(r *http.Request) (collection.Criteria, error) {
	q := r.URL.Query()
	criteria := collection.Criteria{Search: q.Get("search")}
	if raw := q.Get("fuzzy"); raw != "" {
		fuzzy, err := strconv.ParseBool(raw)
		if err != nil {
			return collection.Criteria{}, errors.New("fuzzy must be a boolean")
		}
		criteria.Fuzzy = fuzzy
	}
	for key, values := range q {
		if key == "search" || key == "fuzzy" || len(values) == 0 {
			continue
		}
		if criteria.Filters == nil {
			criteria.Filters = make(map[string]string)
		}
		criteria.Filters[key] = values[0]
	}
	return criteria, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, kind domain.Kind, err error) {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": verr.Error(), "field": verr.Field})
	case collection.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("dashboard request failed", "kind", string(kind), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
