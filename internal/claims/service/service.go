package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,CoverLookup,Auditer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"claims/internal/claims/models"
	covermodels "claims/internal/covers/models"
	platformmetrics "claims/internal/platform/metrics"
	dErrors "claims/pkg/domain-errors"
	"claims/pkg/platform/sentinel"
)

// MaxDamageCost is the highest damage cost a single claim may report.
var MaxDamageCost = decimal.NewFromInt(100_000)

// Store persists claims.
type Store interface {
	List(ctx context.Context) ([]*models.Claim, error)
	FindByID(ctx context.Context, id string) (*models.Claim, error)
	Create(ctx context.Context, claim *models.Claim) error
	Delete(ctx context.Context, id string) error
}

// CoverLookup resolves the cover a claim is filed against.
type CoverLookup interface {
	Get(ctx context.Context, id string) (*covermodels.Cover, error)
}

// Auditer records claim mutations.
type Auditer interface {
	AuditClaim(claimID, httpMethod string) error
}

type Service struct {
	claims  Store
	covers  CoverLookup
	auditer Auditer
	metrics *platformmetrics.Metrics
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *platformmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(claims Store, covers CoverLookup, auditer Auditer, opts ...Option) (*Service, error) {
	if claims == nil {
		return nil, errors.New("claim store is required")
	}
	if covers == nil {
		return nil, errors.New("cover lookup is required")
	}
	if auditer == nil {
		return nil, errors.New("auditer is required")
	}
	s := &Service{
		claims:  claims,
		covers:  covers,
		auditer: auditer,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Claim, error) {
	claims, err := s.claims.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list claims")
	}
	return claims, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Claim, error) {
	claim, err := s.claims.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "claim not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load claim")
	}
	return claim, nil
}

// Create validates the claim against its cover, stores it and audits the
// creation.
func (s *Service) Create(ctx context.Context, req models.CreateClaimRequest) (*models.Claim, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.CoverID = strings.TrimSpace(req.CoverID)
	if err := s.validateCreate(ctx, req); err != nil {
		return nil, err
	}

	claim := &models.Claim{
		ID:         uuid.NewString(),
		CoverID:    req.CoverID,
		Created:    req.Created,
		Name:       req.Name,
		Type:       req.Type,
		DamageCost: req.DamageCost,
	}
	if err := s.claims.Create(ctx, claim); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "claim already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create claim")
	}

	s.audit(ctx, claim.ID, http.MethodPost)
	if s.metrics != nil {
		s.metrics.IncClaimsCreated()
	}
	return claim, nil
}

// Delete removes a claim. Unknown ids are ignored and not audited.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.claims.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete claim")
	}

	s.audit(ctx, id, http.MethodDelete)
	if s.metrics != nil {
		s.metrics.IncClaimsDeleted()
	}
	return nil
}

func (s *Service) validateCreate(ctx context.Context, req models.CreateClaimRequest) error {
	fields := map[string]string{}

	if req.Name == "" {
		fields["name"] = "name is required"
	}
	if !req.Type.Valid() {
		fields["type"] = "unknown claim type"
	}
	if req.DamageCost.IsNegative() {
		fields["damageCost"] = "damage cost cannot be negative"
	} else if req.DamageCost.GreaterThan(MaxDamageCost) {
		fields["damageCost"] = "damage cost cannot exceed 100,000"
	}

	if req.CoverID == "" {
		fields["coverId"] = "cover id is required"
	} else {
		cover, err := s.covers.Get(ctx, req.CoverID)
		switch {
		case dErrors.HasCode(err, dErrors.CodeNotFound):
			fields["coverId"] = "related cover not found"
		case err != nil:
			return err
		case req.Created.IsZero() || !cover.Covers(req.Created):
			fields["created"] = "created date must be within the period of the related cover"
		}
	}

	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

func (s *Service) audit(ctx context.Context, claimID, method string) {
	if err := s.auditer.AuditClaim(claimID, method); err != nil {
		s.logger.WarnContext(ctx, "claim audit not enqueued",
			"claim_id", claimID,
			"http_method", method,
			"error", err,
		)
	}
}
