package service

import "errors"

// Contract errors. State-conflict, capacity and authorization errors are
// produced deliberately and surface to callers unmodified; infrastructure
// errors from the store propagate as-is.
var (
	// not-found
	ErrEventNotFound        = errors.New("event not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEntryNotFound        = errors.New("waitlist entry not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// state-conflict
	ErrAlreadyOnWaitlist         = errors.New("already on waitlist")
	ErrNotOnWaitlist             = errors.New("not on waitlist")
	ErrCannotLeaveAfterAccepting = errors.New("cannot leave after accepting")
	ErrInviteNotPending          = errors.New("invite not pending")
	ErrEntryNotWaiting           = errors.New("entry is not waiting")

	// capacity
	ErrWaitlistFull     = errors.New("waitlist is full")
	ErrEventFull        = errors.New("event is full")
	ErrNoAvailableSlots = errors.New("no available slots for event")

	// authorization
	ErrNotOrganizer = errors.New("user is not organizer of event")

	// validation
	ErrCapacityNotSet    = errors.New("event capacity is not set")
	ErrInvalidSampleSize = errors.New("sample size must be between 1 and available slots")
	ErrEmptyWaitlist     = errors.New("no users on waitlist")
	ErrDeadlineNotPassed = errors.New("deadline has not passed yet")
)
