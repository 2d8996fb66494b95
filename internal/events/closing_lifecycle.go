package events

import "time"

const ClosingLifecycleTopic = "obras.closing.lifecycle.v1"

const (
	ClosingClosedEventType = "closing_closed"
	ClosingPaidEventType   = "closing_paid"
)

type ClosingLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	ClosingID  string    `json:"closing_id"`
	WorkerID   string    `json:"worker_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalValue string    `json:"total_value"`
	OccurredAt time.Time `json:"occurred_at"`
}
