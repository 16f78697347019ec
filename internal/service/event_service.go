package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/repository"
	"github.com/communityhub/waitlist-service/pkg/rabbitmq"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	GetEventStatus(ctx context.Context, eventID string) (*EventStatus, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error)
	SetGeolocationRequirement(ctx context.Context, organizerID, eventID string, required bool) error
	SetEventImage(ctx context.Context, organizerID, eventID string, kind models.ImageKind, data []byte) (*models.Image, error)
}

type CreateEventInput struct {
	Title            string
	Description      string
	Location         string
	OrganizerID      string
	MaxCapacity      *int
	WaitlistCapacity *int
	StartDate        *time.Time
	EndDate          *time.Time
}

// EventStatus is the capacity and waitlist summary for one event.
type EventStatus struct {
	EventID         string                       `json:"event_id"`
	Title           string                       `json:"title"`
	MaxCapacity     *int                         `json:"max_capacity"`
	CurrentCapacity int                          `json:"current_capacity"`
	AvailableSlots  int                          `json:"available_slots"`
	StatusCounts    map[models.EntryStatus]int64 `json:"status_counts"`
}

type eventService struct {
	eventRepo repository.EventRepository
	entryRepo repository.WaitlistRepository
	userRepo  repository.UserRepository
	imageRepo repository.ImageRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(
	eventRepo repository.EventRepository,
	entryRepo repository.WaitlistRepository,
	userRepo repository.UserRepository,
	imageRepo repository.ImageRepository,
	publisher *rabbitmq.Publisher,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		imageRepo: imageRepo,
		publisher: publisher,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	event := &models.Event{
		ID:               uuid.NewString(),
		Title:            input.Title,
		Description:      input.Description,
		Location:         input.Location,
		OrganizerID:      input.OrganizerID,
		MaxCapacity:      input.MaxCapacity,
		WaitlistCapacity: input.WaitlistCapacity,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	// Best-effort: the event record is the source of truth for ownership,
	// the organizer's denormalized list just mirrors it.
	if organizer, err := s.userRepo.FindByID(ctx, input.OrganizerID); err == nil {
		organizer.AddCreatedEvent(event.ID)
		if err := s.userRepo.Update(ctx, organizer); err != nil {
			log.Printf("[EventService] failed to record event %s on organizer %s: %v", event.ID, input.OrganizerID, err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[EventService] failed to load organizer %s: %v", input.OrganizerID, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", map[string]any{
			"event_id":     event.ID,
			"organizer_id": event.OrganizerID,
		})
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEventStatus(ctx context.Context, eventID string) (*EventStatus, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	counts, err := s.entryRepo.CountsByEventGrouped(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &EventStatus{
		EventID:         event.ID,
		Title:           event.Title,
		MaxCapacity:     event.MaxCapacity,
		CurrentCapacity: event.CurrentCapacity,
		AvailableSlots:  event.AvailableSlots(),
		StatusCounts:    counts,
	}, nil
}

func (s *eventService) ListByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	return s.eventRepo.ListByOrganizer(ctx, organizerID)
}

func (s *eventService) SetGeolocationRequirement(ctx context.Context, organizerID, eventID string, required bool) error {
	event, err := s.authorizedEvent(ctx, organizerID, eventID)
	if err != nil {
		return err
	}
	if event.RequiresGeolocation == required {
		return nil
	}
	event.RequiresGeolocation = required
	return s.eventRepo.Update(ctx, nil, event)
}

// SetEventImage stores event media and points the event at it. A new upload
// replaces the previous record for the same kind.
func (s *eventService) SetEventImage(ctx context.Context, organizerID, eventID string, kind models.ImageKind, data []byte) (*models.Image, error) {
	event, err := s.authorizedEvent(ctx, organizerID, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.imageRepo.DeleteByEventAndKind(ctx, eventID, kind); err != nil {
		return nil, err
	}
	image := &models.Image{
		ID:         uuid.NewString(),
		EventID:    eventID,
		Kind:       kind,
		Data:       data,
		UploadedBy: organizerID,
	}
	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	switch kind {
	case models.ImagePoster:
		event.PosterImageID = &image.ID
	case models.ImageQRCode:
		event.QRCodeImageID = &image.ID
	}
	if err := s.eventRepo.Update(ctx, nil, event); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *eventService) authorizedEvent(ctx context.Context, organizerID, eventID string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrNotOrganizer
	}
	return event, nil
}
