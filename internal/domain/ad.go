package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PosterCategory string

const (
	PosterPrivate  PosterCategory = "private"
	PosterBusiness PosterCategory = "business"
)

type Ad struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	UserID         uuid.UUID      `json:"user_id" db:"user_id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	Region         string         `json:"region" db:"region"`
	Municipality   *string        `json:"municipality,omitempty" db:"municipality"`
	Price          *float64       `json:"price,omitempty" db:"price"`
	Category       *string        `json:"category,omitempty" db:"category"`
	PosterCategory PosterCategory `json:"poster_category" db:"poster_category"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateAdInput struct {
	Title          string         `json:"title" validate:"required,min=3,max=200"`
	Description    string         `json:"description" validate:"required,max=5000"`
	Region         string         `json:"region" validate:"required,max=100"`
	Municipality   *string        `json:"municipality,omitempty" validate:"omitempty,max=100"`
	Price          *float64       `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category       *string        `json:"category,omitempty" validate:"omitempty,max=100"`
	PosterCategory PosterCategory `json:"poster_category" validate:"omitempty,oneof=private business"`
}

type UpdateAdInput struct {
	Title          *string         `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description    *string         `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
	Region         *string         `json:"region,omitempty" validate:"omitempty,min=1,max=100"`
	Municipality   *string         `json:"municipality,omitempty" validate:"omitempty,max=100"`
	Price          *float64        `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category       *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	PosterCategory *PosterCategory `json:"poster_category,omitempty" validate:"omitempty,oneof=private business"`
}

// Normalize trims the free-text fields so length rules see the stored value.
func (in *CreateAdInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Region = strings.TrimSpace(in.Region)
	in.Municipality = trimmed(in.Municipality)
	in.Category = trimmed(in.Category)
}

func (in *UpdateAdInput) Normalize() {
	in.Title = trimmed(in.Title)
	in.Description = trimmed(in.Description)
	in.Region = trimmed(in.Region)
	in.Municipality = trimmed(in.Municipality)
	in.Category = trimmed(in.Category)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type AdSearchParams struct {
	Query          string `query:"q"`
	Region         string `query:"region"`
	Municipality   string `query:"municipality"`
	Category       string `query:"category"`
	PosterCategory string `query:"poster_category" validate:"omitempty,oneof=private business"`
}

// IsFiltered reports whether the caller narrowed the catalog beyond the
// default newest-first listing.
func (p AdSearchParams) IsFiltered() bool {
	return p.Query != "" || p.Region != "" || p.Municipality != "" ||
		p.Category != "" || p.PosterCategory != ""
}

// CatalogPreview is what anonymous visitors get: the newest ads and a hint
// that signing in shows more.
type CatalogPreview struct {
	Data    []Ad `json:"data"`
	HasMore bool `json:"has_more"`
}
