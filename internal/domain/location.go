package domain

type Location struct {
	ID           int     `json:"id" db:"id"`
	Region       string  `json:"region" db:"region"`
	Municipality *string `json:"municipality,omitempty" db:"municipality"`
}
