package models

import (
	"errors"
	"fmt"
	"time"
)

type EntryStatus string

const (
	StatusWaiting   EntryStatus = "WAITING"
	StatusInvited   EntryStatus = "INVITED"
	StatusAccepted  EntryStatus = "ACCEPTED"
	StatusDeclined  EntryStatus = "DECLINED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// ErrInvalidTransition is returned by the MarkX methods when the entry's
// current status does not permit the requested transition.
var ErrInvalidTransition = errors.New("invalid status transition")

// GeoPoint is a geographic coordinate captured at join time for events that
// require geolocation.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WaitingListEntry is the per-user-per-event waitlist record. At most one
// entry exists per (event, user) pair; the database enforces this with a
// composite unique index. Status only moves forward through the lifecycle:
// WAITING -> INVITED -> ACCEPTED/DECLINED, with CANCELLED reachable from
// WAITING and INVITED. Each transition stamps its timestamp exactly once.
type WaitingListEntry struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	EventID     string      `gorm:"not null;uniqueIndex:idx_entries_event_user" json:"event_id"`
	UserID      string      `gorm:"not null;uniqueIndex:idx_entries_event_user" json:"user_id"`
	Status      EntryStatus `gorm:"type:varchar(20);not null;default:'WAITING'" json:"status"`
	JoinedAt    time.Time   `gorm:"not null" json:"joined_at"`
	InvitedAt   *time.Time  `json:"invited_at,omitempty"`
	AcceptedAt  *time.Time  `json:"accepted_at,omitempty"`
	DeclinedAt  *time.Time  `json:"declined_at,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
	JoinLat     *float64    `json:"join_lat,omitempty"`
	JoinLng     *float64    `json:"join_lng,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (e *WaitingListEntry) HasStatus(s EntryStatus) bool {
	return e.Status == s
}

// JoinLocation returns the coordinate captured at join time, or nil.
func (e *WaitingListEntry) JoinLocation() *GeoPoint {
	if e.JoinLat == nil || e.JoinLng == nil {
		return nil
	}
	return &GeoPoint{Lat: *e.JoinLat, Lng: *e.JoinLng}
}

func (e *WaitingListEntry) SetJoinLocation(loc *GeoPoint) {
	if loc == nil {
		return
	}
	lat, lng := loc.Lat, loc.Lng
	e.JoinLat = &lat
	e.JoinLng = &lng
}

// MarkInvited moves a WAITING entry to INVITED.
func (e *WaitingListEntry) MarkInvited() error {
	if e.Status != StatusWaiting {
		return transitionErr(e.Status, StatusInvited)
	}
	now := time.Now()
	e.Status = StatusInvited
	e.InvitedAt = &now
	return nil
}

// MarkAccepted moves an INVITED entry to ACCEPTED.
func (e *WaitingListEntry) MarkAccepted() error {
	if e.Status != StatusInvited {
		return transitionErr(e.Status, StatusAccepted)
	}
	now := time.Now()
	e.Status = StatusAccepted
	e.AcceptedAt = &now
	return nil
}

// MarkDeclined moves an INVITED entry to DECLINED.
func (e *WaitingListEntry) MarkDeclined() error {
	if e.Status != StatusInvited {
		return transitionErr(e.Status, StatusDeclined)
	}
	now := time.Now()
	e.Status = StatusDeclined
	e.DeclinedAt = &now
	return nil
}

// MarkCancelled moves a WAITING or INVITED entry to CANCELLED.
func (e *WaitingListEntry) MarkCancelled() error {
	if e.Status != StatusWaiting && e.Status != StatusInvited {
		return transitionErr(e.Status, StatusCancelled)
	}
	now := time.Now()
	e.Status = StatusCancelled
	e.CancelledAt = &now
	return nil
}

func transitionErr(from, to EntryStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
