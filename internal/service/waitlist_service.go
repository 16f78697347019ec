package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistService interface {
	Join(ctx context.Context, userID, eventID string, location *models.GeoPoint) (*models.WaitingListEntry, error)
	Leave(ctx context.Context, userID, eventID string) error
	Invite(ctx context.Context, organizerID, eventID, userID string) error
	RespondToInvitation(ctx context.Context, eventID, userID string, accepted bool) error
	CancelInvite(ctx context.Context, organizerID, eventID, userID string) error
	CancelNonRegistered(ctx context.Context, eventID string, deadline time.Time) (int, error)
	ListEntries(ctx context.Context, eventID string, status *models.EntryStatus) ([]models.WaitingListEntry, error)
	WaitlistSize(ctx context.Context, eventID string) (int64, error)
	WaitlistCounts(ctx context.Context, eventID string) (map[models.EntryStatus]int64, error)
	History(ctx context.Context, userID string) ([]models.WaitingListEntry, error)
}

type waitlistService struct {
	entryRepo repository.WaitlistRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	notifier  NotificationService
}

func NewWaitlistService(
	entryRepo repository.WaitlistRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
) WaitlistService {
	return &waitlistService{
		entryRepo: entryRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Join adds a user to an event's waitlist. The waitlist-capacity check and
// the insert run inside one transaction holding a row lock on the event, so
// concurrent joins near the boundary cannot both slip through; the composite
// unique index on (event_id, user_id) backstops the duplicate check.
func (s *waitlistService) Join(ctx context.Context, userID, eventID string, location *models.GeoPoint) (*models.WaitingListEntry, error) {
	var result *models.WaitingListEntry

	err := s.entryRepo.InTx(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		_, err = s.entryRepo.GetByEventAndUser(ctx, tx, eventID, userID)
		if err == nil {
			return ErrAlreadyOnWaitlist
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if event.WaitlistCapacity != nil {
			waiting, err := s.entryRepo.CountByEventAndStatus(ctx, tx, eventID, models.StatusWaiting)
			if err != nil {
				return err
			}
			if waiting >= int64(*event.WaitlistCapacity) {
				return ErrWaitlistFull
			}
		}

		entry := &models.WaitingListEntry{
			ID:       uuid.NewString(),
			EventID:  eventID,
			UserID:   userID,
			Status:   models.StatusWaiting,
			JoinedAt: time.Now(),
		}
		entry.SetJoinLocation(location)
		if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.syncUserLists(ctx, userID, func(u *models.User) { u.AddToWaitingLists(eventID) })
	return result, nil
}

// Leave removes a pre-acceptance entry from the store entirely; an ACCEPTED
// entry occupies a seat and cannot be left.
func (s *waitlistService) Leave(ctx context.Context, userID, eventID string) error {
	entry, err := s.entryRepo.GetByEventAndUser(ctx, nil, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOnWaitlist
		}
		return err
	}
	if entry.HasStatus(models.StatusAccepted) {
		return ErrCannotLeaveAfterAccepting
	}

	if err := s.entryRepo.Delete(ctx, eventID, userID); err != nil {
		return err
	}

	s.syncUserLists(ctx, userID, func(u *models.User) { u.RemoveEventRefs(eventID) })
	return nil
}

// Invite promotes a WAITING entry to INVITED on behalf of the organizer.
func (s *waitlistService) Invite(ctx context.Context, organizerID, eventID, userID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.OrganizerID != organizerID {
		return ErrNotOrganizer
	}

	entry, err := s.entryRepo.GetByEventAndUser(ctx, nil, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if !entry.HasStatus(models.StatusWaiting) {
		return ErrEntryNotWaiting
	}
	if err := entry.MarkInvited(); err != nil {
		return err
	}
	return s.entryRepo.Update(ctx, nil, entry)
}

func (s *waitlistService) RespondToInvitation(ctx context.Context, eventID, userID string, accepted bool) error {
	if accepted {
		return s.acceptInvite(ctx, eventID, userID)
	}
	return s.declineInvite(ctx, eventID, userID)
}

// acceptInvite transitions INVITED -> ACCEPTED and increments the event's
// current capacity. Check and increment happen under the event row lock so
// two concurrent accepts cannot both squeeze past maxCapacity.
func (s *waitlistService) acceptInvite(ctx context.Context, eventID, userID string) error {
	err := s.entryRepo.InTx(ctx, func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		entry, err := s.entryRepo.GetByEventAndUser(ctx, tx, eventID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		if !entry.HasStatus(models.StatusInvited) {
			return ErrInviteNotPending
		}

		if event.MaxCapacity == nil {
			return ErrCapacityNotSet
		}
		if event.CurrentCapacity >= *event.MaxCapacity {
			return ErrEventFull
		}

		event.CurrentCapacity++
		if err := entry.MarkAccepted(); err != nil {
			return err
		}
		if err := s.eventRepo.Update(ctx, tx, event); err != nil {
			return err
		}
		return s.entryRepo.Update(ctx, tx, entry)
	})
	if err != nil {
		return err
	}

	s.syncUserLists(ctx, userID, func(u *models.User) {
		u.AddToAttendingLists(eventID)
		u.AddToRegistrationHistory(eventID)
	})
	return nil
}

// declineInvite transitions INVITED -> DECLINED and then backfills the freed
// invitation from the waiting pool.
func (s *waitlistService) declineInvite(ctx context.Context, eventID, userID string) error {
	entry, err := s.entryRepo.GetByEventAndUser(ctx, nil, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if !entry.HasStatus(models.StatusInvited) {
		return ErrInviteNotPending
	}
	if err := entry.MarkDeclined(); err != nil {
		return err
	}
	if err := s.entryRepo.Update(ctx, nil, entry); err != nil {
		return err
	}

	return s.selectReplacement(ctx, eventID)
}

// selectReplacement is the backfill draw: it takes the FIRST entry in
// listing order, unlike the lottery's random draw. The asymmetry is part of
// the observable fairness behavior and is kept deliberately.
func (s *waitlistService) selectReplacement(ctx context.Context, eventID string) error {
	waiting, err := s.entryRepo.ListByEventAndStatus(ctx, eventID, models.StatusWaiting)
	if err != nil {
		return err
	}
	if len(waiting) == 0 {
		// Nobody left to draw; the freed slot stays open for a future lottery.
		return nil
	}

	replacement := waiting[0]
	if err := replacement.MarkInvited(); err != nil {
		return err
	}
	if err := s.entryRepo.Update(ctx, nil, &replacement); err != nil {
		return err
	}
	return s.notifier.NotifyWinners(ctx, eventID, []models.WaitingListEntry{replacement})
}

// CancelInvite is the organizer-initiated counterpart of decline. It does
// not auto-backfill: the calling workflow re-runs the lottery with a sample
// size equal to the number cancelled.
func (s *waitlistService) CancelInvite(ctx context.Context, organizerID, eventID, userID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.OrganizerID != organizerID {
		return ErrNotOrganizer
	}

	entry, err := s.entryRepo.GetByEventAndUser(ctx, nil, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if !entry.HasStatus(models.StatusInvited) {
		return ErrInviteNotPending
	}
	if err := entry.MarkCancelled(); err != nil {
		return err
	}
	return s.entryRepo.Update(ctx, nil, entry)
}

// CancelNonRegistered cancels INVITED entries that never accepted once the
// deadline has passed. Returns how many entries were cancelled.
func (s *waitlistService) CancelNonRegistered(ctx context.Context, eventID string, deadline time.Time) (int, error) {
	if time.Now().Before(deadline) {
		return 0, ErrDeadlineNotPassed
	}

	invited, err := s.entryRepo.ListByEventAndStatus(ctx, eventID, models.StatusInvited)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range invited {
		entry := &invited[i]
		if entry.AcceptedAt != nil {
			continue
		}
		if err := entry.MarkCancelled(); err != nil {
			return cancelled, err
		}
		if err := s.entryRepo.Update(ctx, nil, entry); err != nil {
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}

func (s *waitlistService) ListEntries(ctx context.Context, eventID string, status *models.EntryStatus) ([]models.WaitingListEntry, error) {
	if status == nil {
		return s.entryRepo.ListByEvent(ctx, eventID)
	}
	return s.entryRepo.ListByEventAndStatus(ctx, eventID, *status)
}

func (s *waitlistService) WaitlistSize(ctx context.Context, eventID string) (int64, error) {
	return s.entryRepo.CountByEventAndStatus(ctx, nil, eventID, models.StatusWaiting)
}

func (s *waitlistService) WaitlistCounts(ctx context.Context, eventID string) (map[models.EntryStatus]int64, error) {
	return s.entryRepo.CountsByEventGrouped(ctx, eventID)
}

func (s *waitlistService) History(ctx context.Context, userID string) ([]models.WaitingListEntry, error) {
	return s.entryRepo.ListByUser(ctx, userID)
}

// syncUserLists keeps the user's denormalized membership lists in step with
// the authoritative entries. Best-effort: a missing user record or a failed
// write is logged, never surfaced — the entry is the source of truth.
func (s *waitlistService) syncUserLists(ctx context.Context, userID string, mutate func(*models.User)) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WaitlistService] failed to load user %s for list sync: %v", userID, err)
		}
		return
	}
	mutate(user)
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("[WaitlistService] failed to sync membership lists for user %s: %v", userID, err)
	}
}
