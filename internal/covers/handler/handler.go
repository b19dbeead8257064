package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"claims/internal/covers/models"
	"claims/internal/platform/middleware"
	"claims/internal/pricing"
	"claims/pkg/civil"
	dErrors "claims/pkg/domain-errors"
	"claims/pkg/platform/httputil"
)

// Service defines the cover operations exposed over HTTP.
type Service interface {
	List(ctx context.Context) ([]*models.Cover, error)
	Get(ctx context.Context, id string) (*models.Cover, error)
	Create(ctx context.Context, req models.CreateCoverRequest) (*models.Cover, error)
	Delete(ctx context.Context, id string) error
	ComputePremium(start, end civil.Date, coverType pricing.CoverType) (decimal.Decimal, error)
}

// Handler serves the /covers routes.
type Handler struct {
	logger *slog.Logger
	covers Service
}

func New(covers Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, covers: covers}
}

// Register mounts the cover routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/covers", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/compute", h.handleComputePremium)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	covers, err := h.covers.List(r.Context())
	if err != nil {
		h.writeError(r, w, "failed to list covers", err)
		return
	}
	if covers == nil {
		covers = []*models.Cover{}
	}
	httputil.WriteJSON(w, http.StatusOK, covers)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cover, err := h.covers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(r, w, "failed to get cover", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cover)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateCoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create cover request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	cover, err := h.covers.Create(ctx, req)
	if err != nil {
		h.writeError(r, w, "failed to create cover", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, cover)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.covers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(r, w, "failed to delete cover", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleComputePremium quotes a premium from query parameters without
// creating a cover.
func (h *Handler) handleComputePremium(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := map[string]string{}

	start, err := civil.Parse(q.Get("startDate"))
	if err != nil {
		fields["startDate"] = err.Error()
	}
	end, err := civil.Parse(q.Get("endDate"))
	if err != nil {
		fields["endDate"] = err.Error()
	}
	coverType, err := pricing.ParseCoverType(q.Get("coverType"))
	if err != nil {
		fields["coverType"] = err.Error()
	}
	if len(fields) > 0 {
		httputil.WriteError(w, dErrors.NewValidation(fields))
		return
	}

	premium, err := h.covers.ComputePremium(start, end, coverType)
	if err != nil {
		h.writeError(r, w, "failed to compute premium", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.PremiumResponse{
		StartDate: start,
		EndDate:   end,
		Type:      coverType,
		Premium:   premium,
	})
}

func (h *Handler) writeError(r *http.Request, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), msg,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
