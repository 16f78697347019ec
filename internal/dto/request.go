package dto

import "time"

type CreateEventRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	OrganizerID      string     `json:"organizer_id"`
	MaxCapacity      *int       `json:"max_capacity"`
	WaitlistCapacity *int       `json:"waitlist_capacity"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
}

type JoinWaitlistRequest struct {
	UserID string   `json:"user_id"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

type RunLotteryRequest struct {
	OrganizerID string `json:"organizer_id"`
	SampleSize  int    `json:"sample_size"`
}

type InviteRequest struct {
	OrganizerID string `json:"organizer_id"`
}

type RespondInvitationRequest struct {
	UserID   string `json:"user_id"`
	Accepted bool   `json:"accepted"`
}

type CancelInviteRequest struct {
	OrganizerID string `json:"organizer_id"`
	UserID      string `json:"user_id"`
}

type ExpireInvitationsRequest struct {
	Deadline time.Time `json:"deadline"`
}

type BroadcastRequest struct {
	OrganizerID string `json:"organizer_id"`
	Audience    string `json:"audience"`
	Title       string `json:"title"`
	Message     string `json:"message"`
}

type SetGeolocationRequest struct {
	OrganizerID string `json:"organizer_id"`
	Required    bool   `json:"required"`
}

type RegisterUserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
