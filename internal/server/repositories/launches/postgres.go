package launches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/dbx"
	"github.com/pkolesov/launchbook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Launch, error) {
	query :=
		`SELECT id, site, mission, rocket FROM launches
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
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

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Launch, error) {
	query :=
		`SELECT id, site, mission, rocket FROM launches
		 WHERE id = $1
		 `

	launch := &models.Launch{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&launch.ID, &launch.Site, &launch.Mission, &launch.Rocket)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return launch, nil
}
