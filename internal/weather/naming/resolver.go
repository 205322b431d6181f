// Package naming turns coordinates into place labels by trying an ordered
// list of naming strategies and keeping the first answer.
package naming

import (
	"context"
	"fmt"
	"log"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Strategy is one naming source. Attempt returns ok=false when the source
// has no answer for q; errors are treated the same way by the Resolver.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q weather.NameQuery) (label weather.PlaceLabel, ok bool, err error)
}

// Resolver tries its strategies in order and falls back to
// weather.DefaultLabel. It never fails.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a Resolver trying strategies in the given order.
func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Strategies returns the names of the configured strategies, in order.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, st := range r.strategies {
		names = append(names, st.Name())
	}
	return names
}

// ResolveName implements weather.Namer.
func (r *Resolver) ResolveName(ctx context.Context, q weather.NameQuery) weather.PlaceLabel {
	for _, st := range r.strategies {
		label, ok, err := attempt(ctx, st, q)
		if err != nil {
			log.Printf("DEBUG: naming: %s failed for %s: %v", st.Name(), q.Coordinate, err)
			continue
		}
		if ok && !label.Empty() {
			return label
		}
	}
	return weather.DefaultLabel()
}

// attempt isolates a strategy, including panics, from the resolver.
func attempt(ctx context.Context, st Strategy, q weather.NameQuery) (label weather.PlaceLabel, ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
			ok = false
		}
	}()
	return st.Attempt(ctx, q)
}

// DefaultChain builds the standard order: preferred label, address
// components, provider-reported name, nearest reverse candidate, then any
// extra strategies.
func DefaultChain(addresses AddressLookup, candidates CandidateLookup, extra ...Strategy) *Resolver {
	chain := []Strategy{Preferred{}}
	if addresses != nil {
		chain = append(chain, AddressComponents{Source: "nominatim", Lookup: addresses})
	}
	chain = append(chain, ProviderReported{})
	if candidates != nil {
		chain = append(chain, NearestCandidate{Lookup: candidates, Limit: 10})
	}
	chain = append(chain, extra...)
	return NewResolver(chain...)
}
