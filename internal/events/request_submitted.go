package events

import "time"

const RequestSubmittedTopic = "guarding.request.v1"

type RequestSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	RequestType string    `json:"request_type"`
	FromUser    string    `json:"from_user"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
