package trips

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/dbx"
	"github.com/pkolesov/launchbook/internal/server/models"
)

// PostgresRepository holds the full *sql.DB rather than dbx.DBTX because
// Book opens its own transaction.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Book(ctx context.Context, userID string, launchIDs []string) ([]string, error) {

	query :=
		`INSERT INTO trips (user_id, launch_id)
		 SELECT $1, id FROM launches WHERE id = $2
		 ON CONFLICT DO NOTHING
		 `

	var booked []string

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, launchID := range launchIDs {
			res, err := tx.ExecContext(ctx, query, userID, launchID)
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			if n > 0 {
				booked = append(booked, launchID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booked, nil
}

func (r *PostgresRepository) Cancel(ctx context.Context, userID string, launchID string) error {

	query :=
		`DELETE FROM trips
		 WHERE user_id = $1 AND launch_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, launchID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Launch, error) {

	query :=
		`SELECT l.id, l.site, l.mission, l.rocket
		 FROM trips t
		 JOIN launches l ON l.id = t.launch_id
		 WHERE t.user_id = $1
		 ORDER BY t.booked_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var launches []models.Launch
	for rows.Next() {
		var l models.Launch
		if err := rows.Scan(&l.ID, &l.Site, &l.Mission, &l.Rocket); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		launches = append(launches, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return launches, nil
}
