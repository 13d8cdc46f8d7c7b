package weather

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL weather repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new weather record.
func (r *PostgresRepository) Insert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO weather_observations (
			id, location, latitude, longitude, temperature, humidity,
			wind_speed, pressure, condition, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Location,
		record.Latitude,
		record.Longitude,
		record.Temperature,
		record.Humidity,
		record.WindSpeed,
		record.Pressure,
		string(record.Condition),
		record.RecordedAt,
	)
	return err
}

// Latest returns the most recent weather record for a location.
func (r *PostgresRepository) Latest(ctx context.Context, location string) (*Record, error) {
	query := `
		SELECT id, location, latitude, longitude, temperature, humidity,
			wind_speed, pressure, condition, recorded_at
		FROM weather_observations
		WHERE lower(location) = lower($1)
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var record Record
	var condition string
	err := r.pool.QueryRow(ctx, query, location).Scan(
		&record.ID,
		&record.Location,
		&record.Latitude,
		&record.Longitude,
		&record.Temperature,
		&record.Humidity,
		&record.WindSpeed,
		&record.Pressure,
		&condition,
		&record.RecordedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRecords
		}
		return nil, err
	}

	record.Condition = Condition(condition)
	return &record, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
