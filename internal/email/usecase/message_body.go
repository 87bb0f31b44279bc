package usecase

import (
	"encoding/base64"
	"strings"
	"time"

	emaildomain "redalert-backend/internal/email/domain"
)

// EmailDateLayout is the only sent-date format the poller understands,
// e.g. "Mon, 16 Dec 2025 19:01:33 -0300".
const EmailDateLayout = "Mon, 2 Jan 2006 15:04:05 -0700"

// ExtractBody returns the decoded text of msg. A single-part body wins;
// otherwise the first part that decodes to non-blank text is used. An empty
// string means there is nothing worth analyzing.
func ExtractBody(msg *emaildomain.RawMessage) string {
	if msg == nil {
		return ""
	}
	if msg.BodyData != "" {
		return decodeBody(msg.BodyData)
	}
	for _, part := range msg.Parts {
		if text := decodeBody(part.Data); text != "" {
			return text
		}
	}
	return ""
}

func decodeBody(data string) string {
	data = strings.TrimSpace(data)
	if data == "" {
		return ""
	}
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding, base64.StdEncoding} {
		if decoded, err := enc.DecodeString(data); err == nil {
			text := string(decoded)
			if strings.TrimSpace(text) == "" {
				return ""
			}
			return text
		}
	}
	return ""
}

// ParseEmailDate parses a Date header, falling back to now() when it does not
// match EmailDateLayout.
func ParseEmailDate(value string, now func() time.Time) time.Time {
	if t, err := time.Parse(EmailDateLayout, strings.TrimSpace(value)); err == nil {
		return t
	}
	return now()
}
