package entity

import "time"

// ThreadSeed is emitted after a committed accept or propose-offer so the
// messaging subsystem can create or reuse the task's conversation thread.
type ThreadSeed struct {
	TaskID    string  `json:"task_id"`
	CreatorID string  `json:"creator_id"`
	HelperID  string  `json:"helper_id"`
	Price     float64 `json:"price"`
}

// StatusEvent is emitted after every committed transition for the
// notification dispatcher. Delivery is asynchronous and best-effort; a failed
// dispatch never rolls back the transition.
type StatusEvent struct {
	TaskID          string    `json:"task_id"`
	NewStatus       string    `json:"new_status"`
	Action          string    `json:"action"`
	ActorID         string    `json:"actor_id"`
	InvolvedParties []string  `json:"involved_parties"`
	OccurredAt      time.Time `json:"occurred_at"`
}
