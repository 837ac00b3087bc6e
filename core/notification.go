package core

// Notification is an outbound message addressed to a single chat. ID
// correlates the send with its log lines.
type Notification struct {
	ID     string
	ChatID int64
	Text   string
}
