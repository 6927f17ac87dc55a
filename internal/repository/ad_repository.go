package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"annonsplats/internal/domain"
)

type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error)
	Update(ctx context.Context, ad *domain.Ad) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params domain.AdSearchParams, limit, offset int) ([]domain.Ad, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Ad, int64, error)
}

type adRepository struct {
	db *sqlx.DB
}

func NewAdRepository(db *sqlx.DB) AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *domain.Ad) error {
	query := `
		INSERT INTO ads (id, user_id, title, description, region, municipality, price, category, poster_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		ad.ID, ad.UserID, ad.Title, ad.Description, ad.Region, ad.Municipality,
		ad.Price, ad.Category, ad.PosterCategory,
	).Scan(&ad.CreatedAt, &ad.UpdatedAt)
}

func (r *adRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	var ad domain.Ad
	query := `SELECT * FROM ads WHERE id = $1`

	err := r.db.GetContext(ctx, &ad, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) Update(ctx context.Context, ad *domain.Ad) error {
	query := `
		UPDATE ads
		SET title = :title, description = :description, region = :region,
			municipality = :municipality, price = :price, category = :category,
			poster_category = :poster_category, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, ad)
	return err
}

func (r *adRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ads WHERE id = $1`, id)
	return err
}

func (r *adRepository) Search(ctx context.Context, params domain.AdSearchParams, limit, offset int) ([]domain.Ad, int64, error) {
	where, args := searchConditions(params)

	var total int64
	countQuery := `SELECT COUNT(*) FROM ads` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM ads%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)

	ads := []domain.Ad{}
	if err := r.db.SelectContext(ctx, &ads, query, append(args, limit, offset)...); err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

func (r *adRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Ad, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ads WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	ads := []domain.Ad{}
	query := `SELECT * FROM ads WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &ads, query, userID, limit, offset); err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

func searchConditions(params domain.AdSearchParams) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q := strings.TrimSpace(params.Query); q != "" {
		add(`(title ILIKE $%[1]d OR description ILIKE $%[1]d OR region ILIKE $%[1]d OR COALESCE(municipality, '') ILIKE $%[1]d)`,
			"%"+escapeLike(q)+"%")
	}
	if params.Region != "" {
		add(`region = $%d`, params.Region)
	}
	if params.Municipality != "" {
		add(`municipality = $%d`, params.Municipality)
	}
	if params.Category != "" {
		add(`category = $%d`, params.Category)
	}
	if params.PosterCategory != "" {
		add(`poster_category = $%d`, params.PosterCategory)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
