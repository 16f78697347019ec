package service

import (
	"context"

	"github.com/communityhub/waitlist-service/internal/models"
	"gorm.io/gorm"
)

// Function-field mocks for the repository interfaces. Unset fields fall back
// to harmless defaults so each test only wires what it exercises; InTx runs
// the closure with a nil tx, which the repositories treat as "use the default
// connection".

// --- Mock WaitlistRepository ---

type mockEntryRepo struct {
	inTxFn                  func(ctx context.Context, fn func(tx *gorm.DB) error) error
	createFn                func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error
	getByEventAndUserFn     func(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error)
	updateFn                func(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error
	deleteFn                func(ctx context.Context, eventID, userID string) error
	listByEventFn           func(ctx context.Context, eventID string) ([]models.WaitingListEntry, error)
	listByEventAndStatusFn  func(ctx context.Context, eventID string, status models.EntryStatus) ([]models.WaitingListEntry, error)
	countByEventAndStatusFn func(ctx context.Context, tx *gorm.DB, eventID string, status models.EntryStatus) (int64, error)
	countsByEventGroupedFn  func(ctx context.Context, eventID string) (map[models.EntryStatus]int64, error)
	listByUserFn            func(ctx context.Context, userID string) ([]models.WaitingListEntry, error)
}

func (m *mockEntryRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if m.inTxFn != nil {
		return m.inTxFn(ctx, fn)
	}
	return fn(nil)
}

func (m *mockEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, entry)
	}
	return nil
}

func (m *mockEntryRepo) GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID string) (*models.WaitingListEntry, error) {
	if m.getByEventAndUserFn != nil {
		return m.getByEventAndUserFn(ctx, tx, eventID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) Update(ctx context.Context, tx *gorm.DB, entry *models.WaitingListEntry) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tx, entry)
	}
	return nil
}

func (m *mockEntryRepo) Delete(ctx context.Context, eventID, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEntryRepo) ListByEvent(ctx context.Context, eventID string) ([]models.WaitingListEntry, error) {
	if m.listByEventFn != nil {
		return m.listByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockEntryRepo) ListByEventAndStatus(ctx context.Context, eventID string, status models.EntryStatus) ([]models.WaitingListEntry, error) {
	if m.listByEventAndStatusFn != nil {
		return m.listByEventAndStatusFn(ctx, eventID, status)
	}
	return nil, nil
}

func (m *mockEntryRepo) CountByEventAndStatus(ctx context.Context, tx *gorm.DB, eventID string, status models.EntryStatus) (int64, error) {
	if m.countByEventAndStatusFn != nil {
		return m.countByEventAndStatusFn(ctx, tx, eventID, status)
	}
	return 0, nil
}

func (m *mockEntryRepo) CountsByEventGrouped(ctx context.Context, eventID string) (map[models.EntryStatus]int64, error) {
	if m.countsByEventGroupedFn != nil {
		return m.countsByEventGroupedFn(ctx, eventID)
	}
	return map[models.EntryStatus]int64{}, nil
}

func (m *mockEntryRepo) ListByUser(ctx context.Context, userID string) ([]models.WaitingListEntry, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn          func(ctx context.Context, event *models.Event) error
	findByIDFn        func(ctx context.Context, id string) (*models.Event, error)
	updateFn          func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	deleteFn          func(ctx context.Context, id string) error
	listByOrganizerFn func(ctx context.Context, organizerID string) ([]models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error) {
	return m.FindByID(ctx, id)
}

func (m *mockEventRepo) Update(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, tx, event)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockEventRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	if m.listByOrganizerFn != nil {
		return m.listByOrganizerFn(ctx, organizerID)
	}
	return nil, nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn   func(ctx context.Context, user *models.User) error
	findByIDFn func(ctx context.Context, id string) (*models.User, error)
	updateFn   func(ctx context.Context, user *models.User) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock NotificationRepository ---

type mockNotificationRepo struct {
	createFn            func(ctx context.Context, notification *models.Notification) error
	findByIDFn          func(ctx context.Context, id string) (*models.Notification, error)
	updateFn            func(ctx context.Context, notification *models.Notification) error
	listByRecipientFn   func(ctx context.Context, recipientID string, limit int, startAfterID string) ([]models.Notification, error)
	listByEventFn       func(ctx context.Context, eventID string, limit int) ([]models.Notification, error)
	deleteAllForEventFn func(ctx context.Context, eventID string) error
	deleteAllForUserFn  func(ctx context.Context, recipientID string) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) Update(ctx context.Context, notification *models.Notification) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit int, startAfterID string) ([]models.Notification, error) {
	if m.listByRecipientFn != nil {
		return m.listByRecipientFn(ctx, recipientID, limit, startAfterID)
	}
	return nil, nil
}

func (m *mockNotificationRepo) ListByEvent(ctx context.Context, eventID string, limit int) ([]models.Notification, error) {
	if m.listByEventFn != nil {
		return m.listByEventFn(ctx, eventID, limit)
	}
	return nil, nil
}

func (m *mockNotificationRepo) DeleteAllForEvent(ctx context.Context, eventID string) error {
	if m.deleteAllForEventFn != nil {
		return m.deleteAllForEventFn(ctx, eventID)
	}
	return nil
}

func (m *mockNotificationRepo) DeleteAllForUser(ctx context.Context, recipientID string) error {
	if m.deleteAllForUserFn != nil {
		return m.deleteAllForUserFn(ctx, recipientID)
	}
	return nil
}

// --- Mock ImageRepository ---

type mockImageRepo struct {
	saveFn               func(ctx context.Context, image *models.Image) error
	findByEventAndKindFn func(ctx context.Context, eventID string, kind models.ImageKind) (*models.Image, error)
	deleteFn             func(ctx context.Context, eventID string, kind models.ImageKind) error
}

func (m *mockImageRepo) Save(ctx context.Context, image *models.Image) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, image)
	}
	return nil
}

func (m *mockImageRepo) FindByEventAndKind(ctx context.Context, eventID string, kind models.ImageKind) (*models.Image, error) {
	if m.findByEventAndKindFn != nil {
		return m.findByEventAndKindFn(ctx, eventID, kind)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockImageRepo) DeleteByEventAndKind(ctx context.Context, eventID string, kind models.ImageKind) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, eventID, kind)
	}
	return nil
}

// --- Mock NotificationService ---

type mockNotifier struct {
	notifyWinnersFn func(ctx context.Context, eventID string, winners []models.WaitingListEntry) error
	notifyLosersFn  func(ctx context.Context, eventID string, losers []models.WaitingListEntry) error
}

func (m *mockNotifier) NotifyWinners(ctx context.Context, eventID string, winners []models.WaitingListEntry) error {
	if m.notifyWinnersFn != nil {
		return m.notifyWinnersFn(ctx, eventID, winners)
	}
	return nil
}

func (m *mockNotifier) NotifyLosers(ctx context.Context, eventID string, losers []models.WaitingListEntry) error {
	if m.notifyLosersFn != nil {
		return m.notifyLosersFn(ctx, eventID, losers)
	}
	return nil
}

func (m *mockNotifier) BroadcastToWaitlist(ctx context.Context, organizerID, eventID, title, message string) (int, error) {
	return 0, nil
}

func (m *mockNotifier) BroadcastToInvited(ctx context.Context, organizerID, eventID, title, message string) (int, error) {
	return 0, nil
}

func (m *mockNotifier) BroadcastToCancelled(ctx context.Context, organizerID, eventID, title, message string) (int, error) {
	return 0, nil
}

func (m *mockNotifier) SendInfoToUser(ctx context.Context, eventID, userID, message string) error {
	return nil
}

func (m *mockNotifier) ListUserNotifications(ctx context.Context, userID string, limit int, startAfterID string) ([]models.Notification, error) {
	return nil, nil
}

func (m *mockNotifier) GetNotificationLogs(ctx context.Context, eventID string) ([]models.Notification, error) {
	return nil, nil
}

func (m *mockNotifier) Dismiss(ctx context.Context, notificationID string) error {
	return nil
}
