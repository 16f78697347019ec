package dto

import (
	"time"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/service"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type EntryResponse struct {
	ID          string             `json:"id"`
	EventID     string             `json:"event_id"`
	UserID      string             `json:"user_id"`
	Status      models.EntryStatus `json:"status"`
	JoinedAt    time.Time          `json:"joined_at"`
	InvitedAt   *time.Time         `json:"invited_at,omitempty"`
	AcceptedAt  *time.Time         `json:"accepted_at,omitempty"`
	DeclinedAt  *time.Time         `json:"declined_at,omitempty"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
	Location    *models.GeoPoint   `json:"location,omitempty"`
}

func ToEntryResponse(e *models.WaitingListEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		EventID:     e.EventID,
		UserID:      e.UserID,
		Status:      e.Status,
		JoinedAt:    e.JoinedAt,
		InvitedAt:   e.InvitedAt,
		AcceptedAt:  e.AcceptedAt,
		DeclinedAt:  e.DeclinedAt,
		CancelledAt: e.CancelledAt,
		Location:    e.JoinLocation(),
	}
}

func ToEntryResponses(entries []models.WaitingListEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}

type LotteryResultResponse struct {
	EventID string          `json:"event_id"`
	Winners []EntryResponse `json:"winners"`
	Losers  []EntryResponse `json:"losers"`
}

func ToLotteryResultResponse(r *service.LotteryResult) LotteryResultResponse {
	return LotteryResultResponse{
		EventID: r.EventID,
		Winners: ToEntryResponses(r.Winners),
		Losers:  ToEntryResponses(r.Losers),
	}
}

type NotificationResponse struct {
	ID          string                  `json:"id"`
	RecipientID string                  `json:"recipient_id"`
	EventID     string                  `json:"event_id"`
	Type        models.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	IssueDate   time.Time               `json:"issue_date"`
	Dismissed   bool                    `json:"dismissed"`
}

func ToNotificationResponses(notifications []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			ID:          n.ID,
			RecipientID: n.RecipientID,
			EventID:     n.EventID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			IssueDate:   n.IssueDate,
			Dismissed:   n.Dismissed,
		}
	}
	return out
}

type CascadeReportResponse struct {
	Steps []service.StepResult `json:"steps"`
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}

type ExpireInvitationsResponse struct {
	Cancelled int `json:"cancelled"`
}

type WaitlistCountsResponse struct {
	EventID string                       `json:"event_id"`
	Counts  map[models.EntryStatus]int64 `json:"counts"`
}
