package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/repository"
	"github.com/communityhub/waitlist-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

// StepResult records the outcome of one cascade step so callers can inspect
// partial failures instead of digging through logs.
type StepResult struct {
	Step  string `json:"step"`
	Error string `json:"error,omitempty"`
}

func (r StepResult) OK() bool { return r.Error == "" }

type CascadeService interface {
	DeleteEvent(ctx context.Context, eventID string) ([]StepResult, error)
	DeleteUserCascade(ctx context.Context, userID string) ([]StepResult, error)
}

type cascadeService struct {
	entryRepo        repository.WaitlistRepository
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	imageRepo        repository.ImageRepository
	publisher        *rabbitmq.Publisher
}

func NewCascadeService(
	entryRepo repository.WaitlistRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	imageRepo repository.ImageRepository,
	publisher *rabbitmq.Publisher,
) CascadeService {
	return &cascadeService{
		entryRepo:        entryRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		imageRepo:        imageRepo,
		publisher:        publisher,
	}
}

// DeleteEvent tears down an event and every record referencing it.
// Best-effort: step failures are logged and recorded but do not stop the
// remaining steps. The event document goes last, so no step ever races a
// missing parent; only a failure of that terminal delete fails the call.
func (s *cascadeService) DeleteEvent(ctx context.Context, eventID string) ([]StepResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	log.Printf("[CascadeService] starting cascade deletion for event %s", eventID)
	var results []StepResult

	if event.PosterImageID != nil {
		results = append(results, s.step("delete poster image",
			s.imageRepo.DeleteByEventAndKind(ctx, eventID, models.ImagePoster)))
	}
	if event.QRCodeImageID != nil {
		results = append(results, s.step("delete qr code image",
			s.imageRepo.DeleteByEventAndKind(ctx, eventID, models.ImageQRCode)))
	}

	entries, err := s.entryRepo.ListByEvent(ctx, eventID)
	if err != nil {
		results = append(results, s.step("list waitlist entries", err))
	}
	for _, entry := range entries {
		results = append(results, s.step(
			fmt.Sprintf("remove event refs from user %s", entry.UserID),
			s.stripUserRefs(ctx, entry.UserID, eventID)))
		results = append(results, s.step(
			fmt.Sprintf("delete waitlist entry for user %s", entry.UserID),
			s.entryRepo.Delete(ctx, eventID, entry.UserID)))
	}

	results = append(results, s.step("remove event from organizer's created list",
		s.stripOrganizerRef(ctx, event.OrganizerID, eventID)))

	results = append(results, s.step("delete event notifications",
		s.notificationRepo.DeleteAllForEvent(ctx, eventID)))

	// Terminal required step.
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		results = append(results, s.step("delete event document", err))
		return results, fmt.Errorf("delete event document: %w", err)
	}
	results = append(results, s.step("delete event document", nil))

	if s.publisher != nil {
		_ = s.publisher.Publish("event.deleted", map[string]any{"event_id": eventID})
	}
	log.Printf("[CascadeService] event cascade deletion completed for %s", eventID)
	return results, nil
}

// DeleteUserCascade removes a user and everything owned by or addressed to
// them: their waitlist entries (releasing a seat for ACCEPTED ones), every
// event they organized (recursive event cascade), and their notifications.
// The user document goes last and decides the overall outcome.
func (s *cascadeService) DeleteUserCascade(ctx context.Context, userID string) ([]StepResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	log.Printf("[CascadeService] starting cascade deletion for user %s", userID)
	var results []StepResult

	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		results = append(results, s.step("list user's waitlist entries", err))
	}
	for _, entry := range entries {
		if entry.HasStatus(models.StatusAccepted) {
			results = append(results, s.step(
				fmt.Sprintf("release seat on event %s", entry.EventID),
				s.releaseSeat(ctx, entry.EventID)))
		}
		results = append(results, s.step(
			fmt.Sprintf("delete waitlist entry for event %s", entry.EventID),
			s.entryRepo.Delete(ctx, entry.EventID, userID)))
	}

	for _, eventID := range user.EventsCreatedIDs {
		stepName := fmt.Sprintf("cascade delete organized event %s", eventID)
		eventSteps, err := s.DeleteEvent(ctx, eventID)
		results = append(results, eventSteps...)
		results = append(results, s.step(stepName, err))
	}

	results = append(results, s.step("delete user notifications",
		s.notificationRepo.DeleteAllForUser(ctx, userID)))

	// Terminal required step.
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		results = append(results, s.step("delete user document", err))
		return results, fmt.Errorf("delete user document: %w", err)
	}
	results = append(results, s.step("delete user document", nil))

	log.Printf("[CascadeService] user cascade deletion completed for %s", userID)
	return results, nil
}

func (s *cascadeService) stripUserRefs(ctx context.Context, userID, eventID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !user.RemoveEventRefs(eventID) {
		return nil
	}
	return s.userRepo.Update(ctx, user)
}

func (s *cascadeService) stripOrganizerRef(ctx context.Context, organizerID, eventID string) error {
	organizer, err := s.userRepo.FindByID(ctx, organizerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !organizer.RemoveCreatedEvent(eventID) {
		return nil
	}
	return s.userRepo.Update(ctx, organizer)
}

// releaseSeat decrements currentCapacity for an event whose ACCEPTED entry
// is being cascade-deleted, under the event row lock.
func (s *cascadeService) releaseSeat(ctx context.Context, eventID string) error {
	return s.entryRepo.InTx(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if event.CurrentCapacity <= 0 {
			return nil
		}
		event.CurrentCapacity--
		return s.eventRepo.Update(ctx, tx, event)
	})
}

func (s *cascadeService) step(name string, err error) StepResult {
	if err != nil {
		log.Printf("[CascadeService] step %q failed: %v", name, err)
		return StepResult{Step: name, Error: err.Error()}
	}
	return StepResult{Step: name}
}
