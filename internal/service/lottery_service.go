package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/repository"
	"github.com/communityhub/waitlist-service/pkg/rabbitmq"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type LotteryService interface {
	RunLottery(ctx context.Context, organizerID, eventID string, sampleSize int) (*LotteryResult, error)
}

// LotteryResult reports one completed draw: winners were moved to INVITED
// and notified, losers stayed WAITING and were notified.
type LotteryResult struct {
	EventID string
	Winners []models.WaitingListEntry
	Losers  []models.WaitingListEntry
}

type lotteryService struct {
	entryRepo repository.WaitlistRepository
	eventRepo repository.EventRepository
	notifier  NotificationService
	publisher *rabbitmq.Publisher

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLotteryService builds the allocator. rng may be nil, in which case a
// time-seeded source is used; tests pass a fixed seed for repeatable draws.
func NewLotteryService(
	entryRepo repository.WaitlistRepository,
	eventRepo repository.EventRepository,
	notifier NotificationService,
	publisher *rabbitmq.Publisher,
	rng *rand.Rand,
) LotteryService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &lotteryService{
		entryRepo: entryRepo,
		eventRepo: eventRepo,
		notifier:  notifier,
		publisher: publisher,
		rng:       rng,
	}
}

func (s *lotteryService) RunLottery(ctx context.Context, organizerID, eventID string, sampleSize int) (*LotteryResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrNotOrganizer
	}
	if event.MaxCapacity == nil {
		return nil, ErrCapacityNotSet
	}

	availableSlots := *event.MaxCapacity - event.CurrentCapacity
	if availableSlots <= 0 {
		return nil, ErrNoAvailableSlots
	}
	if sampleSize < 1 || sampleSize > availableSlots {
		return nil, ErrInvalidSampleSize
	}

	waiting, err := s.entryRepo.ListByEventAndStatus(ctx, eventID, models.StatusWaiting)
	if err != nil {
		return nil, err
	}
	if len(waiting) == 0 {
		return nil, ErrEmptyWaitlist
	}

	slotsToFill := min(sampleSize, len(waiting))
	winners := s.drawWinners(waiting, slotsToFill)
	losers := subtractEntries(waiting, winners)

	// All invites commit together; if any write fails, the run fails as a
	// whole and no notifications for it are sent.
	err = s.entryRepo.InTx(ctx, func(tx *gorm.DB) error {
		for i := range winners {
			if err := winners[i].MarkInvited(); err != nil {
				return err
			}
			if err := s.entryRepo.Update(ctx, tx, &winners[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.notifier.NotifyWinners(gctx, eventID, winners) })
	g.Go(func() error { return s.notifier.NotifyLosers(gctx, eventID, losers) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("lottery.completed", map[string]any{
			"event_id": eventID,
			"winners":  len(winners),
			"losers":   len(losers),
		})
	}

	return &LotteryResult{EventID: eventID, Winners: winners, Losers: losers}, nil
}

// drawWinners selects slotsToFill entries uniformly at random without
// replacement via a partial in-place shuffle: each prefix position swaps
// with a uniformly chosen element from the unprocessed suffix. O(slotsToFill)
// regardless of pool size.
func (s *lotteryService) drawWinners(entries []models.WaitingListEntry, slotsToFill int) []models.WaitingListEntry {
	pool := append([]models.WaitingListEntry(nil), entries...)
	if slotsToFill >= len(pool) {
		return pool
	}

	s.mu.Lock()
	for i := 0; i < slotsToFill; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.mu.Unlock()

	return pool[:slotsToFill]
}

// subtractEntries returns the entries of all that are not in picked.
func subtractEntries(all, picked []models.WaitingListEntry) []models.WaitingListEntry {
	pickedIDs := make(map[string]struct{}, len(picked))
	for _, entry := range picked {
		pickedIDs[entry.ID] = struct{}{}
	}
	rest := make([]models.WaitingListEntry, 0, len(all)-len(picked))
	for _, entry := range all {
		if _, ok := pickedIDs[entry.ID]; !ok {
			rest = append(rest, entry)
		}
	}
	return rest
}
