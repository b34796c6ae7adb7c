package userdata

import (
	"context"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

// LocationResolver returns a user's last shared coordinate. A nil coordinate
// with a nil error means the user has no shareable location, which is a
// normal outcome; errors are infrastructure faults.
type LocationResolver interface {
	Resolve(ctx context.Context, userID string) (*geo.Coordinate, error)

	// UsersWithLocation lists users currently sharing a location, for the
	// meal-time notification scheduler.
	UsersWithLocation(ctx context.Context) ([]string, error)
}

// HistoryReader exposes the user's historical interaction signal. Affinity is
// per venue category in [0,1]; an empty map means no history, which scorers
// must treat as neutral rather than disqualifying.
type HistoryReader interface {
	CategoryAffinity(ctx context.Context, userID string) (map[string]float64, error)
}
