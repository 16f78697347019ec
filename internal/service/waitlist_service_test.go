package service

import (
	"context"
	"testing"
	"time"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func sampleEvent() *models.Event {
	return &models.Event{
		ID:          "ev-1",
		Title:       "Community Meetup",
		OrganizerID: "org-1",
		MaxCapacity: intPtr(2),
	}
}

func eventRepoReturning(event *models.Event) *mockEventRepo {
	return &mockEventRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Event, error) {
			if event != nil && id == event.ID {
				return event, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

// --- Join ---

func TestJoin_Success(t *testing.T) {
	var created *models.WaitingListEntry
	entryRepo := &mockEntryRepo{
		createFn: func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
			created = entry
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	entry, err := svc.Join(context.Background(), "user-1", "ev-1", &models.GeoPoint{Lat: 1, Lng: 2})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, models.StatusWaiting, entry.Status)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "ev-1", entry.EventID)
	assert.NotEmpty(t, entry.ID)
	assert.NotNil(t, entry.JoinLocation())
}

func TestJoin_EventNotFound(t *testing.T) {
	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(nil), &mockUserRepo{}, &mockNotifier{})

	_, err := svc.Join(context.Background(), "user-1", "missing", nil)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestJoin_Duplicate(t *testing.T) {
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusWaiting}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	_, err := svc.Join(context.Background(), "user-1", "ev-1", nil)

	assert.ErrorIs(t, err, ErrAlreadyOnWaitlist)
}

func TestJoin_WaitlistFull(t *testing.T) {
	event := sampleEvent()
	event.WaitlistCapacity = intPtr(3)
	entryRepo := &mockEntryRepo{
		countByEventAndStatusFn: func(ctx context.Context, tx *gorm.DB, eventID string, status models.EntryStatus) (int64, error) {
			return 3, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(event), &mockUserRepo{}, &mockNotifier{})
	_, err := svc.Join(context.Background(), "user-1", "ev-1", nil)

	assert.ErrorIs(t, err, ErrWaitlistFull)
}

func TestJoin_ZeroWaitlistCapacityIsClosed(t *testing.T) {
	event := sampleEvent()
	event.WaitlistCapacity = intPtr(0)

	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(event), &mockUserRepo{}, &mockNotifier{})
	_, err := svc.Join(context.Background(), "user-1", "ev-1", nil)

	assert.ErrorIs(t, err, ErrWaitlistFull)
}

func TestJoin_SyncsUserWaitingList(t *testing.T) {
	user := &models.User{ID: "user-1"}
	var updated *models.User
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.User, error) { return user, nil },
		updateFn:   func(ctx context.Context, u *models.User) error { updated = u; return nil },
	}

	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(sampleEvent()), userRepo, &mockNotifier{})
	_, err := svc.Join(context.Background(), "user-1", "ev-1", nil)

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Contains(t, updated.WaitingListsJoinedIDs, "ev-1")
}

// --- Leave ---

func TestLeave_Success(t *testing.T) {
	deleted := false
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusWaiting}, nil
		},
		deleteFn: func(ctx context.Context, eventID, userID string) error {
			deleted = true
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	err := svc.Leave(context.Background(), "user-1", "ev-1")

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestLeave_NotOnWaitlist(t *testing.T) {
	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})

	err := svc.Leave(context.Background(), "user-1", "ev-1")

	assert.ErrorIs(t, err, ErrNotOnWaitlist)
}

func TestLeave_AcceptedCannotLeave(t *testing.T) {
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{Status: models.StatusAccepted}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	err := svc.Leave(context.Background(), "user-1", "ev-1")

	assert.ErrorIs(t, err, ErrCannotLeaveAfterAccepting)
}

// --- Invite ---

func TestInvite_Success(t *testing.T) {
	var updated *models.WaitingListEntry
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusWaiting}, nil
		},
		updateFn: func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
			updated = entry
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	err := svc.Invite(context.Background(), "org-1", "ev-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusInvited, updated.Status)
	assert.NotNil(t, updated.InvitedAt)
}

func TestInvite_NotOrganizer(t *testing.T) {
	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})

	err := svc.Invite(context.Background(), "intruder", "ev-1", "user-1")

	assert.ErrorIs(t, err, ErrNotOrganizer)
}

func TestInvite_EntryNotWaiting(t *testing.T) {
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{Status: models.StatusInvited}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	err := svc.Invite(context.Background(), "org-1", "ev-1", "user-1")

	assert.ErrorIs(t, err, ErrEntryNotWaiting)
}

// --- Accept ---

func TestAccept_IncrementsCapacity(t *testing.T) {
	event := sampleEvent()
	event.CurrentCapacity = 1
	var updatedEntry *models.WaitingListEntry
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusInvited}, nil
		},
		updateFn: func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
			updatedEntry = entry
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(event), &mockUserRepo{}, &mockNotifier{})
	err := svc.RespondToInvitation(context.Background(), "ev-1", "user-1", true)

	assert.NoError(t, err)
	assert.Equal(t, 2, event.CurrentCapacity)
	assert.Equal(t, models.StatusAccepted, updatedEntry.Status)
}

func TestAccept_EventFull(t *testing.T) {
	event := sampleEvent()
	event.CurrentCapacity = 2
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{Status: models.StatusInvited}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(event), &mockUserRepo{}, &mockNotifier{})
	err := svc.RespondToInvitation(context.Background(), "ev-1", "user-1", true)

	assert.ErrorIs(t, err, ErrEventFull)
	assert.Equal(t, 2, event.CurrentCapacity)
}

func TestAccept_CapacityNotSet(t *testing.T) {
	event := sampleEvent()
	event.MaxCapacity = nil
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{Status: models.StatusInvited}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(event), &mockUserRepo{}, &mockNotifier{})
	err := svc.RespondToInvitation(context.Background(), "ev-1", "user-1", true)

	assert.ErrorIs(t, err, ErrCapacityNotSet)
}

func TestAccept_RequiresPendingInvite(t *testing.T) {
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{Status: models.StatusWaiting}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	err := svc.RespondToInvitation(context.Background(), "ev-1", "user-1", true)

	assert.ErrorIs(t, err, ErrInviteNotPending)
}

// --- Decline + backfill ---

func TestDecline_BackfillsFirstWaiting(t *testing.T) {
	first := models.WaitingListEntry{ID: "e-2", EventID: "ev-1", UserID: "user-2", Status: models.StatusWaiting}
	second := models.WaitingListEntry{ID: "e-3", EventID: "ev-1", UserID: "user-3", Status: models.StatusWaiting}

	var promoted []string
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusInvited}, nil
		},
		listByEventAndStatusFn: func(ctx context.Context, eventID string, status models.EntryStatus) ([]models.WaitingListEntry, error) {
			return []models.WaitingListEntry{first, second}, nil
		},
		updateFn: func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
			if entry.Status == models.StatusInvited {
				promoted = append(promoted, entry.UserID)
			}
			return nil
		},
	}
	var winNotified []string
	notifier := &mockNotifier{
		notifyWinnersFn: func(ctx context.Context, eventID string, winners []models.WaitingListEntry) error {
			for _, w := range winners {
				winNotified = append(winNotified, w.UserID)
			}
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, notifier)
	err := svc.RespondToInvitation(context.Background(), "ev-1", "user-1", false)

	assert.NoError(t, err)
	assert.Equal(t, []string{"user-2"}, promoted)
	assert.Equal(t, []string{"user-2"}, winNotified)
}

func TestDecline_EmptyPoolNoBackfill(t *testing.T) {
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusInvited}, nil
		},
	}
	notified := false
	notifier := &mockNotifier{
		notifyWinnersFn: func(ctx context.Context, eventID string, winners []models.WaitingListEntry) error {
			notified = true
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, notifier)
	err := svc.RespondToInvitation(context.Background(), "ev-1", "user-1", false)

	assert.NoError(t, err)
	assert.False(t, notified)
}

// --- CancelInvite ---

func TestCancelInvite_Success(t *testing.T) {
	var updated *models.WaitingListEntry
	entryRepo := &mockEntryRepo{
		getByEventAndUserFn: func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
			return &models.WaitingListEntry{EventID: eventID, UserID: userID, Status: models.StatusInvited}, nil
		},
		updateFn: func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
			updated = entry
			return nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	err := svc.CancelInvite(context.Background(), "org-1", "ev-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestCancelInvite_NotOrganizer(t *testing.T) {
	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})

	err := svc.CancelInvite(context.Background(), "intruder", "ev-1", "user-1")

	assert.ErrorIs(t, err, ErrNotOrganizer)
}

// --- CancelNonRegistered ---

func TestCancelNonRegistered_DeadlineNotPassed(t *testing.T) {
	svc := NewWaitlistService(&mockEntryRepo{}, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})

	_, err := svc.CancelNonRegistered(context.Background(), "ev-1", time.Now().Add(time.Hour))

	assert.ErrorIs(t, err, ErrDeadlineNotPassed)
}

// --- Queries ---

func TestWaitlistSize_CountsWaitingOnly(t *testing.T) {
	var gotStatus models.EntryStatus
	entryRepo := &mockEntryRepo{
		countByEventAndStatusFn: func(ctx context.Context, tx *gorm.DB, eventID string, status models.EntryStatus) (int64, error) {
			gotStatus = status
			return 7, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	size, err := svc.WaitlistSize(context.Background(), "ev-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), size)
	assert.Equal(t, models.StatusWaiting, gotStatus)
}

func TestCancelNonRegistered_CancelsPendingInvites(t *testing.T) {
	entryRepo := &mockEntryRepo{
		listByEventAndStatusFn: func(ctx context.Context, eventID string, status models.EntryStatus) ([]models.WaitingListEntry, error) {
			return []models.WaitingListEntry{
				{ID: "e-1", Status: models.StatusInvited},
				{ID: "e-2", Status: models.StatusInvited},
			}, nil
		},
	}

	svc := NewWaitlistService(entryRepo, eventRepoReturning(sampleEvent()), &mockUserRepo{}, &mockNotifier{})
	cancelled, err := svc.CancelNonRegistered(context.Background(), "ev-1", time.Now().Add(-time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 2, cancelled)
}
