package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
)

// MaxInputLength bounds the email text sent to the model.
const MaxInputLength = 5000

// ErrMalformedResponse marks a reply that could not be read as an event.
var ErrMalformedResponse = errors.New("malformed AI response")

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// BuildPrompt renders the extraction prompt. receivedAt is the reference "today"
// the model uses to resolve relative dates.
func BuildPrompt(text string, receivedAt time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	clean := truncate(text, MaxInputLength)
	clean = strings.ReplaceAll(clean, "\"", "'")
	clean = strings.ReplaceAll(clean, "\n", " ")

	return fmt.Sprintf(`You are a smart assistant for a student. Your job is to analyze notification emails from school/courses and identify if there is a scheduled class, meeting, or live event.

Current Context:
- Today's Date (Email Received): %s
- Timezone: %s

Instructions:
1. Analyze the email text below.
2. If it mentions a class, meeting, live session, or webinar (e.g., "LIVE CLASS", "MENTORING", "MEETING"), extract the details.
3. Resolve relative dates (e.g., "tomorrow", "next monday") based on TODAY'S DATE.
4. Extract the LINK/URL if available.
5. Create a RICH DESCRIPTION that summarizes the email content, key topics, and instructions. This description will be used as the calendar event body.
6. Return ONLY a valid JSON object. Do not include markdown formatting like `+"```json"+`.

JSON Structure:
{
    "title": "Short title of the event",
    "date": "YYYY-MM-DDTHH:mm:ss",
    "url": "https://...",
    "description": "Detailed summary of agenda/topics/instructions from email body",
    "isUrgent": true
}

If NO relevant event is found, return null.

EMAIL CONTENT:
%s`, receivedAt.In(loc).Format("2006-01-02T15:04:05"), loc.String(), clean)
}

type extraction struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Description string `json:"description"`
	IsUrgent    bool   `json:"isUrgent"`
}

// ParseExtraction reads a model reply. It returns nil, nil when the model
// signalled that there is no event, and ErrMalformedResponse when the reply
// is not a usable event object.
func ParseExtraction(reply string, loc *time.Location) (*alertdomain.ClassAlert, error) {
	if loc == nil {
		loc = time.UTC
	}

	text := cleanReply(reply)
	if text == "" || strings.EqualFold(text, "null") {
		return nil, nil
	}

	// Models sometimes wrap the object in prose.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in %q", ErrMalformedResponse, truncate(text, 200))
	}
	text = text[start : end+1]

	var raw extraction
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	date, err := parseDate(raw.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	alert, err := alertdomain.NewClassAlert(
		strings.TrimSpace(raw.Title),
		date,
		alertdomain.StringPtr(strings.TrimSpace(raw.URL)),
		strings.TrimSpace(raw.Description),
		raw.IsUrgent,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return alert, nil
}

func cleanReply(reply string) string {
	text := strings.TrimSpace(reply)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
