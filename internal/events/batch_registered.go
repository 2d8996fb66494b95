package events

import "time"

const BatchRegisteredTopic = "obras.production.batch.v1"

type BatchRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	BatchID    string    `json:"batch_id"`
	JobID      string    `json:"job_id"`
	WorkDate   string    `json:"work_date"`
	Workers    int       `json:"workers"`
	Masons     int       `json:"masons"`
	OccurredAt time.Time `json:"occurred_at"`
}
