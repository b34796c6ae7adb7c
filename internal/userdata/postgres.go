package userdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/rfedorina/dining-recommendations/internal/geo"
)

// PostgresStore reads shared locations and vote history from Postgres.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wires an sqlx connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Resolve returns the user's last shared coordinate, or nil when the user has
// none or has sharing disabled.
func (s *PostgresStore) Resolve(ctx context.Context, userID string) (*geo.Coordinate, error) {
	query, args, err := sq.Select("lat", "lng").
		From("user_locations").
		Where(sq.Eq{"user_id": userID, "sharing_enabled": true}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build location query: %w", err)
	}

	var row struct {
		Lat float64 `db:"lat"`
		Lng float64 `db:"lng"`
	}
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user location: %w", err)
	}

	return &geo.Coordinate{Lat: row.Lat, Lng: row.Lng}, nil
}

// UsersWithLocation lists users currently sharing a location.
func (s *PostgresStore) UsersWithLocation(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("user_id").
		From("user_locations").
		Where(sq.Eq{"sharing_enabled": true}).
		OrderBy("user_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	var users []string
	if err := s.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("query sharing users: %w", err)
	}
	return users, nil
}

// CategoryAffinity derives a 0-1 affinity per venue category from the user's
// vote history: upvote share, with categories the user never voted on absent
// from the map.
func (s *PostgresStore) CategoryAffinity(ctx context.Context, userID string) (map[string]float64, error) {
	query, args, err := sq.Select("m.category", "count(*) filter (where v.vote > 0) as ups", "count(*) as total").
		From("venue_votes v").
		Join("venue_markers m on m.id = v.venue_id").
		Where(sq.Eq{"v.user_id": userID}).
		GroupBy("m.category").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build affinity query: %w", err)
	}

	var rows []struct {
		Category string `db:"category"`
		Ups      int    `db:"ups"`
		Total    int    `db:"total"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query vote history: %w", err)
	}

	affinity := make(map[string]float64, len(rows))
	for _, r := range rows {
		if r.Total == 0 {
			continue
		}
		affinity[r.Category] = float64(r.Ups) / float64(r.Total)
	}
	return affinity, nil
}
