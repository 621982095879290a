package entity

import (
	"time"
)

// Task statuses. A cancelled claim returns the task to "open"; the only
// terminal statuses are "completed" and the admin-issued "closed".
const (
	TaskStatusOpen        = "open"
	TaskStatusNegotiating = "negotiating"
	TaskStatusAccepted    = "accepted"
	TaskStatusInProgress  = "in_progress"
	TaskStatusCompleted   = "completed"
	TaskStatusClosed      = "closed"
)

const (
	TaskKindTask = "task"
	TaskKindWish = "wish"
)

type Task struct {
	ID        string `json:"id" firestore:"id"`
	Kind      string `json:"kind" firestore:"kind"` // task, wish
	CreatorID string `json:"creator_id" firestore:"creatorId"`
	HelperID  string `json:"helper_id,omitempty" firestore:"helperId,omitempty"`
	Status    string `json:"status" firestore:"status"`

	Title       string `json:"title" firestore:"title"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	Category    string `json:"category,omitempty" firestore:"category,omitempty"`
	City        string `json:"city,omitempty" firestore:"city,omitempty"`
	Locality    string `json:"locality,omitempty" firestore:"locality,omitempty"`

	Price             float64       `json:"price" firestore:"price"`
	IsNegotiable      bool          `json:"is_negotiable" firestore:"isNegotiable"`
	NegotiationRounds int           `json:"negotiation_rounds" firestore:"negotiationRounds"`
	Offers            []OfferRecord `json:"offers,omitempty" firestore:"offers,omitempty"`

	CreatorCompleted bool `json:"creator_completed" firestore:"creatorCompleted"`
	HelperCompleted  bool `json:"helper_completed" firestore:"helperCompleted"`

	ClosedReason string `json:"closed_reason,omitempty" firestore:"closedReason,omitempty"`

	// Version is the optimistic-concurrency token; every committed write
	// increments it inside the store's transaction.
	Version int64 `json:"version" firestore:"version"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty" firestore:"claimedAt,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty" firestore:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty" firestore:"closedAt,omitempty"`
}

// OfferRecord is one accepted counter-offer in the negotiation history.
type OfferRecord struct {
	ProposerID string    `json:"proposer_id" firestore:"proposerId"`
	Amount     float64   `json:"amount" firestore:"amount"`
	Round      int       `json:"round" firestore:"round"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

// TaskLog is one entry in a task's status history.
type TaskLog struct {
	ID        string    `json:"id" firestore:"id"`
	TaskID    string    `json:"task_id" firestore:"taskId"`
	Status    string    `json:"status" firestore:"status"`
	Action    string    `json:"action" firestore:"action"`
	Notes     string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedBy string    `json:"created_by" firestore:"createdBy"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
