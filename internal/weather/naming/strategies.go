package naming

import (
	"context"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/geo"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// AddressLookup reverse geocodes a coordinate into address components.
type AddressLookup interface {
	ReverseAddress(ctx context.Context, coord geo.Coordinate) (weather.Address, error)
}

// CandidateLookup reverse geocodes a coordinate into several nearby places.
type CandidateLookup interface {
	ReverseCandidates(ctx context.Context, coord geo.Coordinate, limit int) ([]weather.Candidate, error)
}

// Preferred uses the label that came with a search result.
type Preferred struct{}

func (Preferred) Name() string { return "preferred" }

func (Preferred) Attempt(_ context.Context, q weather.NameQuery) (weather.PlaceLabel, bool, error) {
	if q.Preferred.Empty() {
		return weather.PlaceLabel{}, false, nil
	}
	return q.Preferred, true, nil
}

// AddressComponents picks city, town, suburb, village or hamlet from a
// reverse geocoding answer. Municipality labels are never used.
type AddressComponents struct {
	Source string
	Lookup AddressLookup
}

func (a AddressComponents) Name() string { return "address:" + a.Source }

func (a AddressComponents) Attempt(ctx context.Context, q weather.NameQuery) (weather.PlaceLabel, bool, error) {
	addr, err := a.Lookup.ReverseAddress(ctx, q.Coordinate)
	if err != nil {
		return weather.PlaceLabel{}, false, err
	}

	name := common.FirstNonEmpty(isMunicipality, addr.City, addr.Town, addr.Suburb, addr.Village, addr.Hamlet)
	if name == "" {
		return weather.PlaceLabel{}, false, nil
	}

	country := strings.ToUpper(strings.TrimSpace(addr.CountryCode))
	if country == "" {
		country = strings.TrimSpace(addr.Country)
	}
	return weather.PlaceLabel{Name: name, CountryCode: country}, true, nil
}

func isMunicipality(s string) bool {
	return common.HasAny(s, "municipality")
}

// ProviderReported uses the place the current-conditions provider named.
type ProviderReported struct{}

func (ProviderReported) Name() string { return "provider" }

func (ProviderReported) Attempt(_ context.Context, q weather.NameQuery) (weather.PlaceLabel, bool, error) {
	if q.Reported.Empty() {
		return weather.PlaceLabel{}, false, nil
	}
	return q.Reported, true, nil
}

// NearestCandidate picks the reverse geocoding candidate closest to the
// query coordinate. A candidate named like the preferred label wins ties.
type NearestCandidate struct {
	Lookup CandidateLookup
	Limit  int
}

func (NearestCandidate) Name() string { return "nearest" }

func (n NearestCandidate) Attempt(ctx context.Context, q weather.NameQuery) (weather.PlaceLabel, bool, error) {
	candidates, err := n.Lookup.ReverseCandidates(ctx, q.Coordinate, n.Limit)
	if err != nil {
		return weather.PlaceLabel{}, false, err
	}
	best, ok := Nearest(q.Coordinate, candidates, q.Preferred.Name)
	if !ok || strings.TrimSpace(best.Name) == "" {
		return weather.PlaceLabel{}, false, nil
	}
	return best.Label(), true, nil
}

// Nearest returns the candidate closest to origin. The search starts from
// the first candidate named preferName (case-insensitive), or the first
// candidate, and only a strictly closer one replaces it.
func Nearest(origin geo.Coordinate, candidates []weather.Candidate, preferName string) (weather.Candidate, bool) {
	if len(candidates) == 0 {
		return weather.Candidate{}, false
	}

	best := candidates[0]
	if preferName != "" {
		for _, c := range candidates {
			if strings.EqualFold(c.Name, preferName) {
				best = c
				break
			}
		}
	}

	bestDist := geo.DistanceMeters(origin, best.Coordinate)
	for _, c := range candidates {
		if d := geo.DistanceMeters(origin, c.Coordinate); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}
