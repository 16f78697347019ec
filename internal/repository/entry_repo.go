package repository

import (
	"context"

	"github.com/communityhub/waitlist-service/internal/models"
	"gorm.io/gorm"
)

// WaitlistRepository is the store collaborator for waitlist entries, keyed
// by (eventID, userID). Methods taking a tx run against that transaction
// when it is non-nil, otherwise against the base connection.
type WaitlistRepository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error
	GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error)
	Update(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error
	Delete(ctx context.Context, eventID, userID string) error
	ListByEvent(ctx context.Context, eventID string) ([]models.WaitingListEntry, error)
	ListByEventAndStatus(ctx context.Context, eventID string, status models.EntryStatus) ([]models.WaitingListEntry, error)
	CountByEventAndStatus(ctx context.Context, tx *gorm.DB, eventID string, status models.EntryStatus) (int64, error)
	CountsByEventGrouped(ctx context.Context, eventID string) (map[models.EntryStatus]int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.WaitingListEntry, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *waitlistRepository) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *waitlistRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *waitlistRepository) GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
	var entry models.WaitingListEntry
	err := r.conn(tx).WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistRepository) Update(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
	return r.conn(tx).WithContext(ctx).Save(entry).Error
}

func (r *waitlistRepository) Delete(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.WaitingListEntry{}).Error
}

func (r *waitlistRepository) ListByEvent(ctx context.Context, eventID string) ([]models.WaitingListEntry, error) {
	var entries []models.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("joined_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByEventAndStatus returns entries in stable listing order (joined_at,
// then id); the backfill selector depends on this ordering.
func (r *waitlistRepository) ListByEventAndStatus(ctx context.Context, eventID string, status models.EntryStatus) ([]models.WaitingListEntry, error) {
	var entries []models.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, status).
		Order("joined_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *waitlistRepository) CountByEventAndStatus(ctx context.Context, tx *gorm.DB, eventID string, status models.EntryStatus) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&models.WaitingListEntry{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

func (r *waitlistRepository) CountsByEventGrouped(ctx context.Context, eventID string) (map[models.EntryStatus]int64, error) {
	var rows []struct {
		Status models.EntryStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.WaitingListEntry{}).
		Select("status, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.EntryStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *waitlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WaitingListEntry, error) {
	var entries []models.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
