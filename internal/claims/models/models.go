package models

import (
	"github.com/shopspring/decimal"

	"claims/pkg/civil"
)

// Claim reports damage against an existing cover.
type Claim struct {
	ID         string          `json:"id"`
	CoverID    string          `json:"coverId"`
	Created    civil.Date      `json:"created"`
	Name       string          `json:"name"`
	Type       ClaimType       `json:"type"`
	DamageCost decimal.Decimal `json:"damageCost"`
}

// CreateClaimRequest carries the caller supplied fields; the id is assigned
// on creation.
type CreateClaimRequest struct {
	CoverID    string          `json:"coverId"`
	Created    civil.Date      `json:"created"`
	Name       string          `json:"name"`
	Type       ClaimType       `json:"type"`
	DamageCost decimal.Decimal `json:"damageCost"`
}
