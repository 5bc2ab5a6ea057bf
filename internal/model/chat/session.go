package chat

import "time"

// Session is the API-facing snapshot of a live conversation.
type Session struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}
