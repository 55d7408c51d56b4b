package regiondomain

import (
	"errors"
	"fmt"
)

// ErrIntegrity is returned when the region set violates the hierarchy
// invariants or carries an unclassifiable type.
var ErrIntegrity = errors.New("region integrity violation")

// ErrNotFound is returned for an unknown region id.
var ErrNotFound = errors.New("region not found")

// RegionType classifies a region. Codes are stable and used on the wire by the
// ranking parameters (rty).
type RegionType int8

const (
	World RegionType = iota
	Continent
	Country
	CountryGroup
	Subnational
	SubnationalGroup
)

// AllRegionTypes lists every type in code order.
var AllRegionTypes = []RegionType{World, Continent, Country, CountryGroup, Subnational, SubnationalGroup}

var regionTypeNames = [...]string{
	World:            "world",
	Continent:        "continent",
	Country:          "country",
	CountryGroup:     "country_group",
	Subnational:      "subnational",
	SubnationalGroup: "subnational_group",
}

func (t RegionType) Valid() bool {
	return t >= World && t <= SubnationalGroup
}

func (t RegionType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("RegionType(%d)", int8(t))
	}
	return regionTypeNames[t]
}

// MarshalText lets RegionType serve as a JSON object key.
func (t RegionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown region type %d", ErrIntegrity, int8(t))
	}
	return []byte(regionTypeNames[t]), nil
}

func (t *RegionType) UnmarshalText(b []byte) error {
	parsed, err := ParseRegionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseRegionType maps the stored text form onto a RegionType.
func ParseRegionType(s string) (RegionType, error) {
	for i, name := range regionTypeNames {
		if name == s {
			return RegionType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown region type %q", ErrIntegrity, s)
}

// RegionTypeFromCode maps a numeric parameter code onto a RegionType.
func RegionTypeFromCode(code int) (RegionType, bool) {
	if code < int(World) || code > int(SubnationalGroup) {
		return 0, false
	}
	return RegionType(code), true
}

// Region is a node of the geographic hierarchy. ParentID is nil only for
// World regions.
type Region struct {
	ID       int32      `json:"id"`
	Type     RegionType `json:"type"`
	ParentID *int32     `json:"parent_id"`
}

// RegionWithPlayerCount pairs a region with the players attached directly to
// it and, after CollapsePlayerCounts, the players in its whole subtree.
type RegionWithPlayerCount struct {
	Region
	DirectCount int64 `json:"-"`
	PlayerCount int64 `json:"player_count"`
}

// ChildrenTree is the nested id -> children shape served by the tree endpoint.
type ChildrenTree map[int32]ChildrenTree
