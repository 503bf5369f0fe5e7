package model

import "database/sql/driver"

type Message struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type MessageList []Message

func (l MessageList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *MessageList) Scan(src any) error          { return jsonbScan(l, src) }

// Notification is a user's notification channel: one row per user, messages
// appended to the container.
type Notification struct {
	BaseModel
	User             string      `db:"user_id" json:"user"`
	MessageContainer MessageList `db:"message_container" json:"message_container"`
}
