package alert

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSubscriptionSource reads active subscriptions from the user
// preferences table.
type PostgresSubscriptionSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSubscriptionSource creates a new PostgreSQL subscription source.
func NewPostgresSubscriptionSource(pool *pgxpool.Pool) *PostgresSubscriptionSource {
	return &PostgresSubscriptionSource{pool: pool}
}

// ActiveSubscriptions lists users who enabled alerts for the location.
func (s *PostgresSubscriptionSource) ActiveSubscriptions(ctx context.Context, location string) ([]Subscription, error) {
	query := `
		SELECT user_id, saved_location, alert_threshold
		FROM user_profiles
		WHERE alerts_enabled AND lower(saved_location) = lower($1)
	`

	rows, err := s.pool.Query(ctx, query, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.UserID, &sub.Location, &sub.Threshold); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// Ensure PostgresSubscriptionSource implements SubscriptionSource.
var _ SubscriptionSource = (*PostgresSubscriptionSource)(nil)
