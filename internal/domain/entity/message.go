package entity

import "time"

// SystemSenderID is the pseudo-user that authors automated notices, such as
// deposit confirmations written by the transaction flow.
const SystemSenderID = "system"

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

func (m *Message) IsSystem() bool {
	return m.SenderID == SystemSenderID
}
