package repository

import (
	"context"
	"database/sql"
	"time"

	"komfovent_gateway/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// SnapshotRepo keeps the latest panel state. ok is false until the first
// successful poll.
type SnapshotRepo interface {
	Save(ctx context.Context, s models.Snapshot) error
	Load(ctx context.Context) (snap models.Snapshot, ok bool, err error)
	// MarkUnavailable flags the stored snapshot as stale. since is kept
	// from the first call of a failure streak.
	MarkUnavailable(ctx context.Context, reason string, since time.Time) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.DeviceEvent) error
	List(ctx context.Context, from, to time.Time, typ string, limit int) ([]models.DeviceEvent, error)
}

type Repository struct {
	Snapshots SnapshotRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Snapshots: NewSnapshotMemory(),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
