package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFormApproved EventType = "form_approved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	FormID    string      `json:"form_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FormApprovedPayload carries everything the notification side needs.
type FormApprovedPayload struct {
	PersonID     string `json:"person_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
}
