package postgres

import (
	"database/sql"

	"anamola-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all repositories over one database handle.
type Store struct {
	db *sql.DB

	Members       repository.MemberRepository
	Memberships   repository.MembershipRepository
	News          repository.NewsRepository
	Events        repository.EventRepository
	Registrations repository.EventRegistrationRepository
	Activities    repository.ActivityRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		Members:       NewMemberRepository(db),
		Memberships:   NewMembershipRepository(db),
		News:          NewNewsRepository(db),
		Events:        NewEventRepository(db),
		Registrations: NewEventRegistrationRepository(db),
		Activities:    NewActivityRepository(db),
	}
}
