// Package pricing estimates the suggested sale price of a load.
package pricing

import (
	"context"
	"errors"
	"strings"
)

// ErrRouteNotFound is returned by a DistanceSource that does not know the route.
var ErrRouteNotFound = errors.New("route not found")

// DistanceSource resolves the road distance between two places in kilometres.
type DistanceSource interface {
	Name() string
	Lookup(ctx context.Context, origin, destination string) (int, error)
}

// NormalizeCity reduces "Mumbai, Maharashtra" to "mumbai".
func NormalizeCity(place string) string {
	city, _, _ := strings.Cut(place, ",")
	return strings.ToLower(strings.TrimSpace(city))
}

// RouteKey builds the "city_city" key used by the static table.
func RouteKey(origin, destination string) string {
	return NormalizeCity(origin) + "_" + NormalizeCity(destination)
}

// StaticTable is an immutable set of known city-pair distances.
type StaticTable struct {
	km map[string]int
}

// NewStaticTable copies routes keyed by "city_city".
func NewStaticTable(routes map[string]int) *StaticTable {
	km := make(map[string]int, len(routes))
	for k, v := range routes {
		km[strings.ToLower(k)] = v
	}
	return &StaticTable{km: km}
}

// DefaultStaticTable returns the built-in distance table.
func DefaultStaticTable() *StaticTable {
	return NewStaticTable(defaultRoutes)
}

var defaultRoutes = map[string]int{
	"mumbai_delhi":        1400,
	"mumbai_pune":         150,
	"mumbai_bangalore":    985,
	"delhi_jaipur":        280,
	"delhi_kolkata":       1530,
	"chennai_bangalore":   350,
	"mumbai_ahmedabad":    525,
	"delhi_chandigarh":    245,
	"hyderabad_bangalore": 570,
	"chennai_hyderabad":   630,
	"pune_bangalore":      840,
	"mumbai_hyderabad":    710,
	"delhi_lucknow":       555,
	"ahmedabad_delhi":     950,
	"mumbai_chennai":      1335,
}

func (t *StaticTable) Name() string { return "static" }

// Lookup consults the pair in both directions.
func (t *StaticTable) Lookup(_ context.Context, origin, destination string) (int, error) {
	from, to := NormalizeCity(origin), NormalizeCity(destination)
	if from == "" || to == "" {
		return 0, ErrRouteNotFound
	}
	if km, ok := t.km[from+"_"+to]; ok {
		return km, nil
	}
	if km, ok := t.km[to+"_"+from]; ok {
		return km, nil
	}
	return 0, ErrRouteNotFound
}
