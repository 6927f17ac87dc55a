package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Ad          AdRepository
	Location    LocationRepository
	Application ApplicationRepository
	Message     MessageRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Ad:          NewAdRepository(db),
		Location:    NewLocationRepository(db),
		Application: NewApplicationRepository(db),
		Message:     NewMessageRepository(db),
	}
}
