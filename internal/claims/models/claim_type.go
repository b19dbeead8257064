package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ClaimType is the kind of incident a claim reports.
type ClaimType int

const (
	Collision ClaimType = iota
	Grounding
	BadWeather
	Fire
)

var claimTypeNames = [...]string{
	Collision:  "Collision",
	Grounding:  "Grounding",
	BadWeather: "BadWeather",
	Fire:       "Fire",
}

func (c ClaimType) Valid() bool {
	return c >= Collision && c <= Fire
}

func (c ClaimType) String() string {
	if !c.Valid() {
		return "ClaimType(" + strconv.Itoa(int(c)) + ")"
	}
	return claimTypeNames[c]
}

// ParseClaimType accepts the type name (case-insensitive) or its ordinal.
func ParseClaimType(s string) (ClaimType, error) {
	s = strings.TrimSpace(s)
	for i, name := range claimTypeNames {
		if strings.EqualFold(name, s) {
			return ClaimType(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && ClaimType(n).Valid() {
		return ClaimType(n), nil
	}
	return 0, fmt.Errorf("unknown claim type %q", s)
}

func (c ClaimType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid claim type %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *ClaimType) UnmarshalText(text []byte) error {
	parsed, err := ParseClaimType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *ClaimType) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '"' {
		return c.UnmarshalText(data)
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(name))
}
