package recommend

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/rfedorina/dining-recommendations/internal/catalog"
	"github.com/rfedorina/dining-recommendations/internal/geo"
	"github.com/rfedorina/dining-recommendations/internal/places"
	"github.com/rfedorina/dining-recommendations/internal/userdata"
	"github.com/rfedorina/dining-recommendations/internal/weather"
)

// WeatherSource is the weather adapter contract: always returns a snapshot,
// degrading internally.
type WeatherSource interface {
	Current(ctx context.Context, coord geo.Coordinate) weather.Snapshot
}

// VenueDirectory is the third-party directory contract: failures degrade to an
// empty slice internally.
type VenueDirectory interface {
	NearbyDining(ctx context.Context, coord geo.Coordinate, radiusMeters float64, mealType string) []places.Venue
}

// Service is the recommendation aggregator/scorer. Stateless across requests;
// safe for concurrent use.
type Service struct {
	locations userdata.LocationResolver
	history   userdata.HistoryReader
	catalog   catalog.Finder
	directory VenueDirectory
	weather   WeatherSource
	weights   Weights
}

// NewService wires the aggregator's collaborators. Invalid weights fall back
// to the defaults.
func NewService(
	locations userdata.LocationResolver,
	history userdata.HistoryReader,
	cat catalog.Finder,
	directory VenueDirectory,
	weatherSrc WeatherSource,
	weights Weights,
) *Service {
	if !weights.Valid() {
		weights = DefaultWeights()
	}
	return &Service{
		locations: locations,
		history:   history,
		catalog:   cat,
		directory: directory,
		weather:   weatherSrc,
		weights:   weights,
	}
}

// Generate produces the ranked recommendation list for a user and meal type.
// The meal type is validated at the HTTP boundary. A user without a shared
// location yields an empty list, not an error; only location-resolver and
// catalog infrastructure faults propagate.
func (s *Service) Generate(ctx context.Context, userID, mealType string, maxDistanceMeters float64, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		return []Recommendation{}, nil
	}

	coord, err := s.locations.Resolve(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve location for %s: %w", userID, err)
	}
	if coord == nil {
		return []Recommendation{}, nil
	}

	// The remaining sources only need the coordinate, so they run
	// concurrently. Each is independently fault-isolated: directory and
	// weather degrade by construction, history degrades to neutral, and
	// only a catalog fault aborts the request.
	var (
		wg         sync.WaitGroup
		internal   []catalog.Venue
		catalogErr error
		external   []places.Venue
		snap       weather.Snapshot
		affinity   map[string]float64
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		internal, catalogErr = s.catalog.FindNearby(ctx, *coord, maxDistanceMeters, mealType)
	}()
	go func() {
		defer wg.Done()
		external = s.directory.NearbyDining(ctx, *coord, maxDistanceMeters, mealType)
	}()
	go func() {
		defer wg.Done()
		snap = s.weather.Current(ctx, *coord)
	}()
	go func() {
		defer wg.Done()
		var histErr error
		affinity, histErr = s.history.CategoryAffinity(ctx, userID)
		if histErr != nil {
			log.Printf("recommend: history lookup failed for %s, scoring neutral: %v", userID, histErr)
			affinity = nil
		}
	}()
	wg.Wait()

	if catalogErr != nil {
		return nil, fmt.Errorf("query venue catalog: %w", catalogErr)
	}

	pref := weather.DeriveOutdoorPreference(snap)
	sc := scoreContext{
		weights:       s.weights,
		mealType:      mealType,
		maxDistance:   maxDistanceMeters,
		preferOutdoor: pref.PreferOutdoor,
		affinity:      affinity,
	}

	recs := make([]Recommendation, 0, len(internal)+len(external))

	for _, v := range internal {
		distance := geo.DistanceMeters(*coord, v.Coordinate)
		if distance > maxDistanceMeters {
			continue
		}
		score, factors := scoreInternal(sc, v, distance)
		recs = append(recs, Recommendation{
			Source:         SourceInternal,
			ReferenceID:    v.ID,
			Name:           v.Name,
			DistanceMeters: distance,
			Score:          score,
			Factors:        factors,
			Reason:         buildReason(factors, s.weights, mealType, pref.PreferOutdoor),
		})
	}

	for _, v := range external {
		if v.DistanceMeters > maxDistanceMeters {
			continue
		}
		score, factors := scoreExternal(sc, v)
		recs = append(recs, Recommendation{
			Source:         SourceExternal,
			ReferenceID:    v.ID,
			Name:           v.Name,
			DistanceMeters: v.DistanceMeters,
			Score:          score,
			Factors:        factors,
			Reason:         buildReason(factors, s.weights, mealType, pref.PreferOutdoor),
		})
	}

	sortRecommendations(recs)

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// sortRecommendations orders by score descending, distance ascending, then
// internal before external, so identical inputs always rank identically.
func sortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if recs[i].DistanceMeters != recs[j].DistanceMeters {
			return recs[i].DistanceMeters < recs[j].DistanceMeters
		}
		return recs[i].Source == SourceInternal && recs[j].Source == SourceExternal
	})
}
