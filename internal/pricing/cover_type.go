package pricing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CoverType is the kind of insured vessel. It drives both the day-rate
// multiplier and the discount applied to longer periods.
type CoverType int

const (
	Yacht CoverType = iota
	PassengerShip
	ContainerShip
	BulkCarrier
	Tanker
)

var coverTypeNames = [...]string{
	Yacht:         "Yacht",
	PassengerShip: "PassengerShip",
	ContainerShip: "ContainerShip",
	BulkCarrier:   "BulkCarrier",
	Tanker:        "Tanker",
}

// CoverTypes lists every member of the closed set in ordinal order.
func CoverTypes() []CoverType {
	return []CoverType{Yacht, PassengerShip, ContainerShip, BulkCarrier, Tanker}
}

func (c CoverType) Valid() bool {
	return c >= Yacht && c <= Tanker
}

func (c CoverType) String() string {
	if !c.Valid() {
		return "CoverType(" + strconv.Itoa(int(c)) + ")"
	}
	return coverTypeNames[c]
}

// ParseCoverType accepts the type name (case-insensitive) or its ordinal.
func ParseCoverType(s string) (CoverType, error) {
	s = strings.TrimSpace(s)
	for i, name := range coverTypeNames {
		if strings.EqualFold(name, s) {
			return CoverType(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && CoverType(n).Valid() {
		return CoverType(n), nil
	}
	return 0, fmt.Errorf("unknown cover type %q", s)
}

func (c CoverType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid cover type %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *CoverType) UnmarshalText(text []byte) error {
	parsed, err := ParseCoverType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalJSON accepts either the type name or its ordinal as a JSON number.
func (c *CoverType) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '"' {
		return c.UnmarshalText(data)
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(name))
}
