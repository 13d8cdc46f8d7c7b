package history

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL observation repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new observation.
func (r *PostgresRepository) Insert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO aqi_observations (
			id, location, latitude, longitude, aqi, pm25, pm10, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Location,
		record.Latitude,
		record.Longitude,
		record.AQI,
		record.PM25,
		record.PM10,
		record.RecordedAt,
	)
	return err
}

// Range returns observations for a location within [from, to), newest first.
func (r *PostgresRepository) Range(ctx context.Context, location string, from, to time.Time, limit int) ([]Record, error) {
	query := `
		SELECT id, location, latitude, longitude, aqi, pm25, pm10, recorded_at
		FROM aqi_observations
		WHERE lower(location) = lower($1) AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at DESC
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, location, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(
			&record.ID,
			&record.Location,
			&record.Latitude,
			&record.Longitude,
			&record.AQI,
			&record.PM25,
			&record.PM10,
			&record.RecordedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Latest returns the most recent observation for a location.
func (r *PostgresRepository) Latest(ctx context.Context, location string) (*Record, error) {
	query := `
		SELECT id, location, latitude, longitude, aqi, pm25, pm10, recorded_at
		FROM aqi_observations
		WHERE lower(location) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var record Record
	err := r.pool.QueryRow(ctx, query, location).Scan(
		&record.ID,
		&record.Location,
		&record.Latitude,
		&record.Longitude,
		&record.AQI,
		&record.PM25,
		&record.PM10,
		&record.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &record, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
