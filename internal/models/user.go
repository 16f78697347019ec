package models

import "time"

// User carries denormalized event membership lists alongside the profile.
// The lists mirror the authoritative WaitingListEntry records and are
// repaired by the cascade deletion protocol when events or users go away.
type User struct {
	ID                     string    `gorm:"primaryKey" json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	WaitingListsJoinedIDs  []string  `gorm:"serializer:json" json:"waiting_lists_joined_ids"`
	AttendingListsIDs      []string  `gorm:"serializer:json" json:"attending_lists_ids"`
	RegistrationHistoryIDs []string  `gorm:"serializer:json" json:"registration_history_ids"`
	EventsCreatedIDs       []string  `gorm:"serializer:json" json:"events_created_ids"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (u *User) AddToWaitingLists(eventID string) {
	u.WaitingListsJoinedIDs = appendUnique(u.WaitingListsJoinedIDs, eventID)
}

func (u *User) AddToAttendingLists(eventID string) {
	u.AttendingListsIDs = appendUnique(u.AttendingListsIDs, eventID)
}

func (u *User) AddToRegistrationHistory(eventID string) {
	u.RegistrationHistoryIDs = appendUnique(u.RegistrationHistoryIDs, eventID)
}

func (u *User) AddCreatedEvent(eventID string) {
	u.EventsCreatedIDs = appendUnique(u.EventsCreatedIDs, eventID)
}

// RemoveEventRefs strips the event from the waitlist, attending and history
// lists. Reports whether anything changed so callers can skip a no-op write.
func (u *User) RemoveEventRefs(eventID string) bool {
	changed := false
	u.WaitingListsJoinedIDs, changed = removeID(u.WaitingListsJoinedIDs, eventID, changed)
	u.AttendingListsIDs, changed = removeID(u.AttendingListsIDs, eventID, changed)
	u.RegistrationHistoryIDs, changed = removeID(u.RegistrationHistoryIDs, eventID, changed)
	return changed
}

func (u *User) RemoveCreatedEvent(eventID string) bool {
	var changed bool
	u.EventsCreatedIDs, changed = removeID(u.EventsCreatedIDs, eventID, false)
	return changed
}

func appendUnique(list []string, id string) []string {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}

func removeID(list []string, id string, already bool) ([]string, bool) {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, already
}
