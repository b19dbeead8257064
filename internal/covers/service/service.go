package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Auditer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"claims/internal/covers/models"
	platformmetrics "claims/internal/platform/metrics"
	"claims/internal/pricing"
	"claims/pkg/civil"
	dErrors "claims/pkg/domain-errors"
	"claims/pkg/platform/sentinel"
)

// MaxPeriodDays is the longest insurable period.
const MaxPeriodDays = 365

// Store persists covers.
type Store interface {
	List(ctx context.Context) ([]*models.Cover, error)
	FindByID(ctx context.Context, id string) (*models.Cover, error)
	Create(ctx context.Context, cover *models.Cover) error
	Delete(ctx context.Context, id string) error
}

// Auditer records cover mutations.
type Auditer interface {
	AuditCover(coverID, httpMethod string) error
}

// Service orchestrates cover lifecycle and premium quotes.
type Service struct {
	covers     Store
	auditer    Auditer
	calculator *pricing.Calculator
	metrics    *platformmetrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
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

// WithCalculator replaces the default pricing calculator.
func WithCalculator(c *pricing.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calculator = c
		}
	}
}

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(covers Store, auditer Auditer, opts ...Option) (*Service, error) {
	if covers == nil {
		return nil, errors.New("cover store is required")
	}
	if auditer == nil {
		return nil, errors.New("auditer is required")
	}
	s := &Service{
		covers:     covers,
		auditer:    auditer,
		calculator: pricing.NewCalculator(pricing.DefaultBaseDayRate),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Cover, error) {
	covers, err := s.covers.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list covers")
	}
	return covers, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Cover, error) {
	cover, err := s.covers.FindByID(ctx, id)
	if err != nil {
		return nil, wrapCoverErr(err)
	}
	return cover, nil
}

// Create validates the request, prices and stores the cover, then audits the
// creation.
func (s *Service) Create(ctx context.Context, req models.CreateCoverRequest) (*models.Cover, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	cover := &models.Cover{
		ID:        uuid.NewString(),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Type:      req.Type,
	}
	cover.Premium = s.calculator.PremiumFor(cover.Period(), cover.Type)

	if err := s.covers.Create(ctx, cover); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "cover already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create cover")
	}

	s.audit(ctx, cover.ID, http.MethodPost)
	s.incPremiumComputed(cover.Type)
	if s.metrics != nil {
		s.metrics.IncCoversCreated()
	}
	return cover, nil
}

// Delete removes a cover. Deleting an unknown cover is a no-op and is not
// audited.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.covers.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete cover")
	}

	s.audit(ctx, id, http.MethodDelete)
	if s.metrics != nil {
		s.metrics.IncCoversDeleted()
	}
	return nil
}

// ComputePremium quotes a premium without creating a cover.
func (s *Service) ComputePremium(start, end civil.Date, coverType pricing.CoverType) (decimal.Decimal, error) {
	if !coverType.Valid() {
		return decimal.Zero, dErrors.NewValidation(map[string]string{"coverType": "unknown cover type"})
	}
	s.incPremiumComputed(coverType)
	return s.calculator.ComputePremium(start.Time(), end.Time(), coverType), nil
}

func (s *Service) validateCreate(req models.CreateCoverRequest) error {
	fields := map[string]string{}

	if req.StartDate.IsZero() {
		fields["startDate"] = "start date is required"
	}
	if req.EndDate.IsZero() {
		fields["endDate"] = "end date is required"
	}
	if !req.Type.Valid() {
		fields["type"] = "unknown cover type"
	}
	if len(fields) == 0 {
		if req.StartDate.Before(civil.Today(s.now())) {
			fields["startDate"] = "start date cannot be in the past"
		}
		switch days := req.EndDate.DaysSince(req.StartDate); {
		case days <= 0:
			fields["endDate"] = "end date must be after start date"
		case days > MaxPeriodDays:
			fields["endDate"] = "total insurance period cannot exceed 1 year"
		}
	}

	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

// audit runs after the cover change is committed, so a closed pipeline is
// logged rather than returned.
func (s *Service) audit(ctx context.Context, coverID, method string) {
	if err := s.auditer.AuditCover(coverID, method); err != nil {
		s.logger.WarnContext(ctx, "cover audit not enqueued",
			"cover_id", coverID,
			"http_method", method,
			"error", err,
		)
	}
}

func (s *Service) incPremiumComputed(coverType pricing.CoverType) {
	if s.metrics != nil {
		s.metrics.IncPremiumComputed(coverType.String())
	}
}

func wrapCoverErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "cover not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load cover")
}
