package domain

import "time"

// EventCategory identifies the ERP module a real-time event belongs to.
type EventCategory string

const (
	CategoryLead     EventCategory = "lead"
	CategoryDispatch EventCategory = "dispatch"
	CategoryInvoice  EventCategory = "invoice"
	CategoryUser     EventCategory = "user"
	CategoryClient   EventCategory = "client"
	CategorySystem   EventCategory = "system"
)

// Valid reports whether the category is part of the closed enumeration.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryLead, CategoryDispatch, CategoryInvoice, CategoryUser, CategoryClient, CategorySystem:
		return true
	}
	return false
}

// EventType identifies the kind of mutation an event describes.
type EventType string

const (
	EventCreated       EventType = "created"
	EventUpdated       EventType = "updated"
	EventDeleted       EventType = "deleted"
	EventStatusChanged EventType = "status_changed"
	EventAssigned      EventType = "assigned"
	EventCompleted     EventType = "completed"
	EventPaid          EventType = "paid"
	EventAlert         EventType = "alert"
)

// Valid reports whether the event type is part of the closed enumeration.
func (t EventType) Valid() bool {
	switch t {
	case EventCreated, EventUpdated, EventDeleted, EventStatusChanged,
		EventAssigned, EventCompleted, EventPaid, EventAlert:
		return true
	}
	return false
}

// EventName returns the canonical wire name for a (category, type) pair.
// The same pair always yields the same name.
func EventName(category EventCategory, eventType EventType) string {
	return string(category) + ":" + string(eventType)
}

// GlobalEventName is the wire name of the reduced envelope delivered to the
// global room on every emit, regardless of room-specific subscriptions.
const GlobalEventName = "global:event"

// EventMetadata carries routing hints alongside a domain event. A zero
// UserID or OrgID means "not targeted"; a zero Timestamp defaults to
// emission time. Extra fields are passed through into the outbound
// metadata block untouched.
type EventMetadata struct {
	UserID    int64
	OrgID     int64
	Timestamp time.Time
	Extra     map[string]any
}

// GlobalNotice is the reduced envelope broadcast to the global room.
// Low-detail listeners (activity feeds, toast notifications) consume this
// instead of subscribing to individual module rooms.
type GlobalNotice struct {
	ID        int64         `json:"id"`
	Category  EventCategory `json:"category"`
	Type      EventType     `json:"type"`
	Timestamp string        `json:"timestamp"`
	Summary   string        `json:"summary"`
}
