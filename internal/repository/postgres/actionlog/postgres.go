package actionlog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	domain "pantry-app-go/internal/domain/actionlog"
	pgrepo "pantry-app-go/internal/repository/postgres"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListSince(ctx context.Context, groupID string, since time.Time) ([]domain.Entry, error) {
	query := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if !since.IsZero() {
		query = query.Where(`"timestamp" > ?`, since.UTC())
	}

	entries := make([]domain.Entry, 0)
	if err := query.Order(`"timestamp" asc, id asc`).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) Get(ctx context.Context, groupID, entryID string) (*domain.Entry, error) {
	if !pgrepo.ValidIDs(groupID, entryID) {
		return nil, domain.ErrEntryNotFound
	}
	var entry domain.Entry
	if err := r.db.WithContext(ctx).Where("group_id = ? AND id = ?", groupID, entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}
