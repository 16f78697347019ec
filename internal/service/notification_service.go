package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/repository"
	"github.com/communityhub/waitlist-service/pkg/rabbitmq"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService interface {
	NotifyWinners(ctx context.Context, eventID string, winners []models.WaitingListEntry) error
	NotifyLosers(ctx context.Context, eventID string, losers []models.WaitingListEntry) error
	BroadcastToWaitlist(ctx context.Context, organizerID, eventID, title, message string) (int, error)
	BroadcastToInvited(ctx context.Context, organizerID, eventID, title, message string) (int, error)
	BroadcastToCancelled(ctx context.Context, organizerID, eventID, title, message string) (int, error)
	SendInfoToUser(ctx context.Context, eventID, userID, message string) error
	ListUserNotifications(ctx context.Context, userID string, limit int, startAfterID string) ([]models.Notification, error)
	GetNotificationLogs(ctx context.Context, eventID string) ([]models.Notification, error)
	Dismiss(ctx context.Context, notificationID string) error
}

// eventLogLimit caps event-scoped notification log queries.
const eventLogLimit = 1000

type notificationService struct {
	notificationRepo repository.NotificationRepository
	entryRepo        repository.WaitlistRepository
	eventRepo        repository.EventRepository
	publisher        *rabbitmq.Publisher
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	entryRepo repository.WaitlistRepository,
	eventRepo repository.EventRepository,
	publisher *rabbitmq.Publisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		entryRepo:        entryRepo,
		eventRepo:        eventRepo,
		publisher:        publisher,
	}
}

func (s *notificationService) NotifyWinners(ctx context.Context, eventID string, winners []models.WaitingListEntry) error {
	title := s.eventTitle(ctx, eventID) + ": You have been selected!"
	message := "You were selected for this event! Please accept or decline the invitation."
	return s.createMany(ctx, eventID, recipientIDs(winners), models.NotificationWin, title, message)
}

func (s *notificationService) NotifyLosers(ctx context.Context, eventID string, losers []models.WaitingListEntry) error {
	title := s.eventTitle(ctx, eventID) + ": Lottery Results"
	message := "The lottery was run but you were not selected at this time."
	return s.createMany(ctx, eventID, recipientIDs(losers), models.NotificationLose, title, message)
}

func (s *notificationService) BroadcastToWaitlist(ctx context.Context, organizerID, eventID, title, message string) (int, error) {
	return s.broadcast(ctx, organizerID, eventID, models.StatusWaiting, title, message)
}

func (s *notificationService) BroadcastToInvited(ctx context.Context, organizerID, eventID, title, message string) (int, error) {
	return s.broadcast(ctx, organizerID, eventID, models.StatusInvited, title, message)
}

func (s *notificationService) BroadcastToCancelled(ctx context.Context, organizerID, eventID, title, message string) (int, error) {
	return s.broadcast(ctx, organizerID, eventID, models.StatusCancelled, title, message)
}

func (s *notificationService) broadcast(ctx context.Context, organizerID, eventID string, status models.EntryStatus, title, message string) (int, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if event.OrganizerID != organizerID {
		return 0, ErrNotOrganizer
	}

	entries, err := s.entryRepo.ListByEventAndStatus(ctx, eventID, status)
	if err != nil {
		return 0, err
	}
	recipients := recipientIDs(entries)
	if err := s.createMany(ctx, eventID, recipients, models.NotificationBroadcast, title, message); err != nil {
		return 0, err
	}
	return len(recipients), nil
}

func (s *notificationService) SendInfoToUser(ctx context.Context, eventID, userID, message string) error {
	notification := &models.Notification{
		ID:          uuid.NewString(),
		RecipientID: userID,
		EventID:     eventID,
		Type:        models.NotificationInfo,
		Message:     message,
		IssueDate:   time.Now(),
	}
	return s.notificationRepo.Create(ctx, notification)
}

func (s *notificationService) ListUserNotifications(ctx context.Context, userID string, limit int, startAfterID string) ([]models.Notification, error) {
	return s.notificationRepo.ListByRecipient(ctx, userID, limit, startAfterID)
}

func (s *notificationService) GetNotificationLogs(ctx context.Context, eventID string) ([]models.Notification, error) {
	return s.notificationRepo.ListByEvent(ctx, eventID, eventLogLimit)
}

// Dismiss flips the dismissed flag. Dismissing an already-dismissed
// notification is a no-op, not an error.
func (s *notificationService) Dismiss(ctx context.Context, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.Dismissed {
		return nil
	}
	notification.Dismissed = true
	return s.notificationRepo.Update(ctx, notification)
}

// createMany writes one record per recipient. Writes are issued concurrently
// and are independent: a failed write is logged and does not stop siblings,
// but the joined error still surfaces to the caller.
func (s *notificationService) createMany(ctx context.Context, eventID string, recipients []string, typ models.NotificationType, title, message string) error {
	if len(recipients) == 0 {
		return nil
	}

	issued := time.Now()
	var wg sync.WaitGroup
	errCh := make(chan error, len(recipients))
	for _, recipientID := range recipients {
		wg.Add(1)
		go func(recipientID string) {
			defer wg.Done()
			notification := &models.Notification{
				ID:          uuid.NewString(),
				RecipientID: recipientID,
				EventID:     eventID,
				Type:        typ,
				Title:       title,
				Message:     message,
				IssueDate:   issued,
			}
			if err := s.notificationRepo.Create(ctx, notification); err != nil {
				log.Printf("[NotificationService] failed to notify %s for event %s: %v", recipientID, eventID, err)
				errCh <- fmt.Errorf("notify %s: %w", recipientID, err)
			}
		}(recipientID)
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("notification.created", map[string]any{
			"event_id":   eventID,
			"type":       typ,
			"recipients": len(recipients),
		})
	}

	return errors.Join(errs...)
}

func (s *notificationService) eventTitle(ctx context.Context, eventID string) string {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil || event == nil {
		return "Event"
	}
	return event.Title
}

func recipientIDs(entries []models.WaitingListEntry) []string {
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.UserID
	}
	return ids
}
