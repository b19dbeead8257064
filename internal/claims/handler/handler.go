package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"claims/internal/claims/models"
	"claims/internal/platform/middleware"
	dErrors "claims/pkg/domain-errors"
	"claims/pkg/platform/httputil"
)

// Service defines the claim operations exposed over HTTP.
type Service interface {
	List(ctx context.Context) ([]*models.Claim, error)
	Get(ctx context.Context, id string) (*models.Claim, error)
	Create(ctx context.Context, req models.CreateClaimRequest) (*models.Claim, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	logger *slog.Logger
	claims Service
}

func New(claims Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, claims: claims}
}

// Register mounts the claim routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/claims", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	claims, err := h.claims.List(r.Context())
	if err != nil {
		h.writeError(r, w, "failed to list claims", err)
		return
	}
	if claims == nil {
		claims = []*models.Claim{}
	}
	httputil.WriteJSON(w, http.StatusOK, claims)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	claim, err := h.claims.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(r, w, "failed to get claim", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, claim)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create claim request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	claim, err := h.claims.Create(ctx, req)
	if err != nil {
		h.writeError(r, w, "failed to create claim", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, claim)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.claims.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(r, w, "failed to delete claim", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
