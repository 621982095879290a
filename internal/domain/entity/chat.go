package entity

import "time"

// Chat is the conversation thread tied to a task. Threads are created or
// reused when a helper accepts or proposes an offer; message delivery itself
// belongs to the messaging subsystem.
type Chat struct {
	ID            string    `json:"id" firestore:"id"`
	TaskID        string    `json:"task_id" firestore:"taskId"`
	Participants  []string  `json:"participants" firestore:"participants"`
	CreatorID     string    `json:"creator_id" firestore:"creatorId"`
	HelperID      string    `json:"helper_id,omitempty" firestore:"helperId,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
}

type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id,omitempty" firestore:"senderId,omitempty"`
	Type      string    `json:"type" firestore:"type"` // "text", "system"
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
