package types

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsTerminal reports whether no further transitions are expected.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// GenerationTask tracks one asynchronous generation.
type GenerationTask struct {
	ID          string        `json:"taskId"`
	OwnerID     string        `json:"ownerId,omitempty"`
	Status      TaskStatus    `json:"status"`
	Request     TravelRequest `json:"request"`
	Result      *Itinerary    `json:"result,omitempty"`
	ItineraryID string        `json:"itineraryId,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TaskAccepted is the 202 body for an enqueued generation.
type TaskAccepted struct {
	TaskID string     `json:"taskId"`
	Status TaskStatus `json:"status"`
}
