package models

type MessageSeverity string

const (
	SeverityInfo    MessageSeverity = "info"
	SeverityWarning MessageSeverity = "warning"
	SeveritySuccess MessageSeverity = "success"
)

// SystemMessage is an announcement broadcast by an administrator. Read-only
// for ordinary accounts once created.
type SystemMessage struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Severity  MessageSeverity `json:"severity"`
	CreatedAt int64           `json:"createdAt"`
	IsRead    bool            `json:"isRead"`
}

func (m SystemMessage) RecordID() string {
	return m.ID
}
