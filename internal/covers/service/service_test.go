package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"claims/internal/audit"
	"claims/internal/covers/models"
	"claims/internal/covers/service/mocks"
	platformmetrics "claims/internal/platform/metrics"
	"claims/internal/pricing"
	"claims/pkg/civil"
	dErrors "claims/pkg/domain-errors"
	"claims/pkg/platform/sentinel"
)

var fixedNow = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

type CoverServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockStore   *mocks.MockStore
	mockAuditer *mocks.MockAuditer
	metrics     *platformmetrics.Metrics
	logs        *bytes.Buffer
	service     *Service
	ctx         context.Context
}

func TestCoverServiceSuite(t *testing.T) {
	suite.Run(t, new(CoverServiceSuite))
}

func (s *CoverServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.mockAuditer = mocks.NewMockAuditer(s.ctrl)
	s.metrics = platformmetrics.New(prometheus.NewRegistry())
	s.logs = &bytes.Buffer{}
	s.ctx = context.Background()

	var err error
	s.service, err = New(s.mockStore, s.mockAuditer,
		WithLogger(slog.New(slog.NewJSONHandler(s.logs, nil))),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return fixedNow }),
	)
	s.Require().NoError(err)
}

func (s *CoverServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func today() civil.Date {
	return civil.DateOf(fixedNow)
}

func (s *CoverServiceSuite) TestNew() {
	s.Run("nil store", func() {
		_, err := New(nil, s.mockAuditer)
		s.ErrorContains(err, "cover store is required")
	})
	s.Run("nil auditer", func() {
		_, err := New(s.mockStore, nil)
		s.ErrorContains(err, "auditer is required")
	})
}

func (s *CoverServiceSuite) TestCreate() {
	s.Run("prices, stores and audits", func() {
		req := models.CreateCoverRequest{
			StartDate: today(),
			EndDate:   today().AddDays(1),
			Type:      pricing.Yacht,
		}

		var stored *models.Cover
		gomock.InOrder(
			s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, c *models.Cover) error {
					stored = c
					return nil
				}),
			s.mockAuditer.EXPECT().AuditCover(gomock.Any(), "POST").DoAndReturn(
				func(id, _ string) error {
					s.Equal(stored.ID, id)
					return nil
				}),
		)

		cover, err := s.service.Create(s.ctx, req)
		s.Require().NoError(err)
		s.NotEmpty(cover.ID)
		s.True(cover.Premium.Equal(decimal.RequireFromString("1375")), cover.Premium.String())
		s.Equal(1.0, testutil.ToFloat64(s.metrics.CoversCreated))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.PremiumsComputed.WithLabelValues("Yacht")))
	})

	s.Run("start today is accepted regardless of time of day", func() {
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAuditer.EXPECT().AuditCover(gomock.Any(), "POST").Return(nil)

		_, err := s.service.Create(s.ctx, models.CreateCoverRequest{
			StartDate: today(),
			EndDate:   today().AddDays(365),
			Type:      pricing.Tanker,
		})
		s.NoError(err)
	})

	s.Run("closed audit pipeline does not fail the committed create", func() {
		s.logs.Reset()
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAuditer.EXPECT().AuditCover(gomock.Any(), "POST").Return(audit.ErrQueueClosed)

		cover, err := s.service.Create(s.ctx, models.CreateCoverRequest{
			StartDate: today().AddDays(3),
			EndDate:   today().AddDays(10),
			Type:      pricing.BulkCarrier,
		})
		s.Require().NoError(err)
		s.NotNil(cover)
		s.Contains(s.logs.String(), "cover audit not enqueued")
	})

	s.Run("store failure is internal and not audited", func() {
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := s.service.Create(s.ctx, models.CreateCoverRequest{
			StartDate: today(),
			EndDate:   today().AddDays(10),
			Type:      pricing.Yacht,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *CoverServiceSuite) TestCreateValidation() {
	tests := []struct {
		name   string
		req    models.CreateCoverRequest
		fields map[string]string
	}{
		{
			name:   "start in the past",
			req:    models.CreateCoverRequest{StartDate: today().AddDays(-1), EndDate: today().AddDays(5), Type: pricing.Yacht},
			fields: map[string]string{"startDate": "start date cannot be in the past"},
		},
		{
			name:   "end equals start",
			req:    models.CreateCoverRequest{StartDate: today(), EndDate: today(), Type: pricing.Yacht},
			fields: map[string]string{"endDate": "end date must be after start date"},
		},
		{
			name:   "period longer than a year",
			req:    models.CreateCoverRequest{StartDate: today().AddDays(1), EndDate: today().AddDays(367), Type: pricing.Yacht},
			fields: map[string]string{"endDate": "total insurance period cannot exceed 1 year"},
		},
		{
			name: "past start and too long reports both",
			req:  models.CreateCoverRequest{StartDate: today().AddDays(-10), EndDate: today().AddDays(400), Type: pricing.Yacht},
			fields: map[string]string{
				"startDate": "start date cannot be in the past",
				"endDate":   "total insurance period cannot exceed 1 year",
			},
		},
		{
			name:   "unknown type",
			req:    models.CreateCoverRequest{StartDate: today(), EndDate: today().AddDays(1), Type: pricing.CoverType(9)},
			fields: map[string]string{"type": "unknown cover type"},
		},
		{
			name: "missing dates",
			req:  models.CreateCoverRequest{Type: pricing.Yacht},
			fields: map[string]string{
				"startDate": "start date is required",
				"endDate":   "end date is required",
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Create(s.ctx, tt.req)

			var de *dErrors.Error
			s.Require().ErrorAs(err, &de)
			s.Equal(dErrors.CodeValidation, de.Code)
			s.Equal(tt.fields, de.Fields)
		})
	}
}

func (s *CoverServiceSuite) TestGet() {
	s.Run("found", func() {
		want := &models.Cover{ID: "c1"}
		s.mockStore.EXPECT().FindByID(gomock.Any(), "c1").Return(want, nil)

		got, err := s.service.Get(s.ctx, "c1")
		s.NoError(err)
		s.Same(want, got)
	})

	s.Run("missing maps to not found", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), "nope").Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Get(s.ctx, "nope")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CoverServiceSuite) TestList() {
	s.mockStore.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := s.service.List(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *CoverServiceSuite) TestDelete() {
	s.Run("existing cover is audited", func() {
		gomock.InOrder(
			s.mockStore.EXPECT().Delete(gomock.Any(), "c1").Return(nil),
			s.mockAuditer.EXPECT().AuditCover("c1", "DELETE").Return(nil),
		)

		s.NoError(s.service.Delete(s.ctx, "c1"))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.CoversDeleted))
	})

	s.Run("missing cover is a silent no-op", func() {
		s.mockStore.EXPECT().Delete(gomock.Any(), "gone").Return(sentinel.ErrNotFound)

		s.NoError(s.service.Delete(s.ctx, "gone"))
	})

	s.Run("store failure", func() {
		s.mockStore.EXPECT().Delete(gomock.Any(), "c2").Return(errors.New("db down"))

		err := s.service.Delete(s.ctx, "c2")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *CoverServiceSuite) TestComputePremium() {
	start := civil.Date{Year: 2026, Month: time.January, Day: 1}

	premium, err := s.service.ComputePremium(start, start.AddDays(60), pricing.ContainerShip)
	s.Require().NoError(err)
	s.Equal("96525", premium.String())

	premium, err = s.service.ComputePremium(start, start, pricing.Tanker)
	s.Require().NoError(err)
	s.True(premium.IsZero())

	_, err = s.service.ComputePremium(start, start.AddDays(1), pricing.CoverType(-1))
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *CoverServiceSuite) TestCustomCalculator() {
	svc, err := New(s.mockStore, s.mockAuditer, WithCalculator(pricing.NewCalculator(decimal.NewFromInt(1000))))
	s.Require().NoError(err)

	start := civil.Date{Year: 2026, Month: time.January, Day: 1}
	premium, err := svc.ComputePremium(start, start.AddDays(1), pricing.ContainerShip)
	s.Require().NoError(err)
	s.Equal("1300", premium.String())
}
