package gmail

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	emaildomain "redalert-backend/internal/email/domain"
	"redalert-backend/pkg/backoff"

	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	userID      = "me"
	labelUnread = "UNREAD"
)

// Service wraps the Gmail API for the single polled account.
type Service struct {
	srv    *gmail.Service
	policy backoff.Policy
}

// NewService creates a Gmail service on top of an authorized HTTP client.
func NewService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &Service{srv: srv, policy: backoff.DefaultPolicy}, nil
}

// Search returns the ids of messages matching query, newest first.
func (s *Service) Search(ctx context.Context, query string, maxResults int64) ([]string, error) {
	var resp *gmail.ListMessagesResponse
	err := backoff.Do(ctx, "Gmail", "list messages", s.policy, func() error {
		var err error
		resp, err = s.srv.Users.Messages.List(userID).Q(query).MaxResults(maxResults).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// FetchFull retrieves headers and the still-encoded body of a message.
func (s *Service) FetchFull(ctx context.Context, messageID string) (*emaildomain.RawMessage, error) {
	var msg *gmail.Message
	err := backoff.Do(ctx, "Gmail", "get message", s.policy, func() error {
		var err error
		msg, err = s.srv.Users.Messages.Get(userID, messageID).Format("full").Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, err
	}
	return convertGmailMessage(msg), nil
}

// MarkRead removes the UNREAD label.
func (s *Service) MarkRead(ctx context.Context, messageID string) error {
	req := &gmail.ModifyMessageRequest{RemoveLabelIds: []string{labelUnread}}
	return backoff.Do(ctx, "Gmail", "mark read", s.policy, func() error {
		_, err := s.srv.Users.Messages.Modify(userID, messageID, req).Context(ctx).Do()
		return err
	})
}

// SearchEmails runs an ad-hoc query and loads header metadata for each hit.
// Messages whose metadata cannot be loaded are skipped.
func (s *Service) SearchEmails(ctx context.Context, query string, maxResults int64) ([]*emaildomain.EmailSummary, error) {
	ids, err := s.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	emails := make([]*emaildomain.EmailSummary, 0, len(ids))
	for _, id := range ids {
		var msg *gmail.Message
		err := backoff.Do(ctx, "Gmail", "get metadata", s.policy, func() error {
			var err error
			msg, err = s.srv.Users.Messages.Get(userID, id).
				Format("metadata").
				MetadataHeaders("From", "Subject", "Date").
				Context(ctx).Do()
			return err
		})
		if err != nil {
			log.Printf("[Gmail] Error fetching email details for %s: %v", id, err)
			continue
		}
		emails = append(emails, convertToSummary(msg))
	}

	log.Printf("[Gmail] Found %d emails for query %q", len(emails), query)
	return emails, nil
}

func convertGmailMessage(msg *gmail.Message) *emaildomain.RawMessage {
	raw := &emaildomain.RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		LabelIDs: msg.LabelIds,
	}
	if msg.Payload == nil {
		return raw
	}

	raw.From, raw.Subject, raw.Date = decodeHeaders(msg.Payload.Headers)

	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		raw.BodyData = msg.Payload.Body.Data
	}
	raw.Parts = flattenParts(msg.Payload.Parts)
	return raw
}

func convertToSummary(msg *gmail.Message) *emaildomain.EmailSummary {
	summary := &emaildomain.EmailSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		IsUnread: hasLabel(msg.LabelIds, labelUnread),
	}
	if msg.InternalDate > 0 {
		summary.ReceivedAt = time.UnixMilli(msg.InternalDate)
	}
	if msg.Payload != nil {
		summary.From, summary.Subject, _ = decodeHeaders(msg.Payload.Headers)
	}
	return summary
}

// flattenParts walks nested multipart payloads depth first, keeping leaves with data.
func flattenParts(parts []*gmail.MessagePart) []emaildomain.MessagePart {
	var leaves []emaildomain.MessagePart
	var walk func([]*gmail.MessagePart)
	walk = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			if part.Body != nil && part.Body.Data != "" {
				leaves = append(leaves, emaildomain.MessagePart{
					MimeType: part.MimeType,
					Data:     part.Body.Data,
				})
			}
			if len(part.Parts) > 0 {
				walk(part.Parts)
			}
		}
	}
	walk(parts)
	return leaves
}

// decodeHeaders returns From, Subject and Date with RFC 2047 encoded words decoded.
func decodeHeaders(headers []*gmail.MessagePartHeader) (from, subject, date string) {
	var h gomail.Header
	for _, header := range headers {
		h.Add(header.Name, header.Value)
	}

	from = decodedText(&h, "From")
	subject = decodedText(&h, "Subject")
	date = strings.TrimSpace(h.Get("Date"))
	return from, subject, date
}

func decodedText(h *gomail.Header, key string) string {
	value, err := h.Text(key)
	if err != nil {
		return h.Get(key)
	}
	return value
}

func hasLabel(labels []string, labelID string) bool {
	for _, l := range labels {
		if l == labelID {
			return true
		}
	}
	return false
}
