package repository

import (
	"context"

	"github.com/communityhub/waitlist-service/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	Update(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int, startAfterID string) ([]models.Notification, error)
	ListByEvent(ctx context.Context, eventID string, limit int) ([]models.Notification, error)
	DeleteAllForEvent(ctx context.Context, eventID string) error
	DeleteAllForUser(ctx context.Context, recipientID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

// ListByRecipient pages newest-first; startAfterID is the last ID the caller
// already has, resolved to its issue date for a stable cursor.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int, startAfterID string) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("issue_date DESC, id DESC")
	if startAfterID != "" {
		cursor, err := r.FindByID(ctx, startAfterID)
		if err != nil {
			return nil, err
		}
		q = q.Where("(issue_date, id) < (?, ?)", cursor.IssueDate, cursor.ID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) ListByEvent(ctx context.Context, eventID string, limit int) ([]models.Notification, error) {
	q := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("issue_date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var notifications []models.Notification
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) DeleteAllForEvent(ctx context.Context, eventID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.Notification{}).Error
}

func (r *notificationRepository) DeleteAllForUser(ctx context.Context, recipientID string) error {
	return r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Delete(&models.Notification{}).Error
}
