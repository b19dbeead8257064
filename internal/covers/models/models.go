package models

import (
	"github.com/shopspring/decimal"

	"claims/internal/pricing"
	"claims/pkg/civil"
)

// Cover is an insurance cover for a vessel over a date range.
type Cover struct {
	ID        string            `json:"id"`
	StartDate civil.Date        `json:"startDate"`
	EndDate   civil.Date        `json:"endDate"`
	Type      pricing.CoverType `json:"type"`
	Premium   decimal.Decimal   `json:"premium"`
}

// Period is the cover's priced range.
func (c *Cover) Period() pricing.Period {
	return pricing.Period{Start: c.StartDate.Time(), End: c.EndDate.Time()}
}

// Covers reports whether d falls inside the cover, both bounds included.
func (c *Cover) Covers(d civil.Date) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}

// CreateCoverRequest carries the caller supplied fields. The premium is
// always computed server side.
type CreateCoverRequest struct {
	StartDate civil.Date        `json:"startDate"`
	EndDate   civil.Date        `json:"endDate"`
	Type      pricing.CoverType `json:"type"`
}

// PremiumResponse is returned by the premium quote endpoint.
type PremiumResponse struct {
	StartDate civil.Date        `json:"startDate"`
	EndDate   civil.Date        `json:"endDate"`
	Type      pricing.CoverType `json:"type"`
	Premium   decimal.Decimal   `json:"premium"`
}
