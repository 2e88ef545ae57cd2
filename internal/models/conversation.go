package models

import "time"

// DefaultThreadTitle is the placeholder title a thread carries until the
// first user message arrives and a real title is derived from it.
const DefaultThreadTitle = "New Chat"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation thread. Content is opaque
// text; the server never parses it.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Thread is a persisted conversation owned by one user. Messages are
// append-only: individual entries are never edited or removed, only the
// whole thread can be deleted.
type Thread struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LastMessages returns up to n trailing messages in chronological order.
func (t *Thread) LastMessages(n int) []Message {
	if n <= 0 || len(t.Messages) == 0 {
		return nil
	}
	if len(t.Messages) <= n {
		return t.Messages
	}
	return t.Messages[len(t.Messages)-n:]
}
