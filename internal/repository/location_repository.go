package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"annonsplats/internal/domain"
)

type LocationRepository interface {
	ListRegions(ctx context.Context) ([]string, error)
	ListMunicipalities(ctx context.Context, region string) ([]string, error)
	Exists(ctx context.Context, region string, municipality *string) (bool, error)
}

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) ListRegions(ctx context.Context) ([]string, error) {
	regions := []string{}
	err := r.db.SelectContext(ctx, &regions, `SELECT DISTINCT region FROM locations ORDER BY region`)
	return regions, err
}

func (r *locationRepository) ListMunicipalities(ctx context.Context, region string) ([]string, error) {
	var locs []domain.Location
	query := `SELECT * FROM locations WHERE region = $1 AND municipality IS NOT NULL ORDER BY municipality`
	if err := r.db.SelectContext(ctx, &locs, query, region); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(locs))
	for _, l := range locs {
		out = append(out, *l.Municipality)
	}
	return out, nil
}

// Exists checks the region alone when municipality is nil.
func (r *locationRepository) Exists(ctx context.Context, region string, municipality *string) (bool, error) {
	var exists bool
	var err error
	if municipality == nil || *municipality == "" {
		err = r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM locations WHERE region = $1)`, region)
	} else {
		err = r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM locations WHERE region = $1 AND municipality = $2)`, region, *municipality)
	}
	return exists, err
}
