package domain

import "time"

// RawMessage is a mailbox message as fetched for one poll cycle. Body data
// stays base64url-encoded as delivered by the provider.
type RawMessage struct {
	ID       string
	ThreadID string
	From     string
	Subject  string
	Date     string
	Snippet  string
	LabelIDs []string

	// BodyData is set for single-part messages.
	BodyData string
	// Parts lists the leaf parts of a multi-part message, depth first.
	Parts []MessagePart
}

// MessagePart is one leaf of a multi-part message.
type MessagePart struct {
	MimeType string
	Data     string
}

// EmailSummary is the lightweight view returned by ad-hoc mailbox searches.
type EmailSummary struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"threadId"`
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Snippet    string    `json:"snippet"`
	ReceivedAt time.Time `json:"receivedAt"`
	IsUnread   bool      `json:"isUnread"`
}
