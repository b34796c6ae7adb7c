package catalog

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

// PostgresCatalog reads user-curated venue markers from Postgres.
type PostgresCatalog struct {
	db *sqlx.DB
}

// NewPostgresCatalog wires an sqlx connection.
func NewPostgresCatalog(db *sqlx.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

type venueRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Lat         float64 `db:"lat"`
	Lng         float64 `db:"lng"`
	Upvotes     int     `db:"upvotes"`
	Downvotes   int     `db:"downvotes"`
}

// FindNearby selects markers inside a bounding box around the coordinate and
// then applies the precise great-circle cut. The box is a cheap index-friendly
// prefilter; one degree of latitude is ~111km.
func (c *PostgresCatalog) FindNearby(ctx context.Context, coord geo.Coordinate, radiusMeters float64, mealType string) ([]Venue, error) {
	latDelta := radiusMeters / 111000
	lngDelta := radiusMeters / 78000 // conservative for mid latitudes

	query, args, err := sq.Select("id", "name", "description", "category", "lat", "lng", "upvotes", "downvotes").
		From("venue_markers").
		Where(sq.Eq{"category": mealCategories(mealType)}).
		Where(sq.GtOrEq{"lat": coord.Lat - latDelta}).
		Where(sq.LtOrEq{"lat": coord.Lat + latDelta}).
		Where(sq.GtOrEq{"lng": coord.Lng - lngDelta}).
		Where(sq.LtOrEq{"lng": coord.Lng + lngDelta}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build nearby query: %w", err)
	}

	var rows []venueRow
	if err := c.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query venue markers: %w", err)
	}

	venues := make([]Venue, 0, len(rows))
	for _, r := range rows {
		venueCoord := geo.Coordinate{Lat: r.Lat, Lng: r.Lng}
		if geo.DistanceMeters(coord, venueCoord) > radiusMeters {
			continue
		}
		venues = append(venues, Venue{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Category:    r.Category,
			Coordinate:  venueCoord,
			Upvotes:     r.Upvotes,
			Downvotes:   r.Downvotes,
		})
	}
	return venues, nil
}
