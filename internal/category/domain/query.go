package domain

import "strings"

const unreadFilter = "is:unread"

// BuildQuery turns category filter fields into a Gmail search query:
//
//	from:<sender> subject:(a OR "b c") (x OR y) is:unread
//
// Keyword order follows the input. Empty fields contribute nothing.
func BuildQuery(fromFilter, subjectKeywords, bodyKeywords string) string {
	var parts []string

	if from := strings.TrimSpace(fromFilter); from != "" {
		parts = append(parts, "from:"+from)
	}

	if group := orGroup(ParseKeywords(subjectKeywords)); group != "" {
		parts = append(parts, "subject:"+group)
	}

	if group := orGroup(ParseKeywords(bodyKeywords)); group != "" {
		parts = append(parts, group)
	}

	parts = append(parts, unreadFilter)
	return strings.Join(parts, " ")
}

// ParseKeywords splits a comma-separated list, trimming entries and dropping blanks.
func ParseKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func orGroup(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	terms := make([]string, len(keywords))
	for i, k := range keywords {
		if strings.ContainsAny(k, " \t") {
			k = `"` + k + `"`
		}
		terms[i] = k
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}
