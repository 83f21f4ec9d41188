package model

import "time"

// Interaction kinds persisted by the async worker.
const (
	InteractionAsk       = "ask"
	InteractionAnswer    = "answer"
	InteractionMessage   = "message"
	InteractionSummarize = "summarize"
)

// InteractionEvent is the audit record of one user interaction. Events are
// published to RabbitMQ on the request path and persisted by a worker so
// request latency does not pay for the insert.
type InteractionEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Kind      string    `gorm:"size:16;not null;index" json:"kind"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
}
