package summarizer

import "strings"

// parsedOutput holds the four summary fields extracted from model text.
// When structured is false, content carries the raw model text and the
// metadata lists are empty — the graceful-degradation shape.
type parsedOutput struct {
	content    string
	topics     []string
	questions  []string
	decisions  []string
	structured bool
}

// parseStructuredOutput extracts the four labelled sections from the model's
// response. Models drift: headings may gain or lose '#' marks or casing, and
// list items arrive as "-", "*", or "1." bullets. Parsing is line-wise and
// lenient; if no Summary section can be found at all, the whole text becomes
// the content so summarization still yields something usable.
func parseStructuredOutput(raw string) parsedOutput {
	var (
		narrative []string
		topics    []string
		questions []string
		decisions []string
	)

	section := ""
	sawSummary := false

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if heading, ok := matchHeading(trimmed); ok {
			section = heading
			if heading == headingSummary {
				sawSummary = true
			}
			continue
		}

		switch section {
		case headingSummary:
			if trimmed != "" {
				narrative = append(narrative, trimmed)
			}
		case headingTopics:
			topics = appendListItem(topics, trimmed)
		case headingQuestions:
			questions = appendListItem(questions, trimmed)
		case headingDecisions:
			decisions = appendListItem(decisions, trimmed)
		}
	}

	if !sawSummary {
		return parsedOutput{content: strings.TrimSpace(raw)}
	}

	return parsedOutput{
		content:    strings.Join(narrative, " "),
		topics:     topics,
		questions:  questions,
		decisions:  decisions,
		structured: true,
	}
}

// matchHeading reports whether the line is one of the four section headings,
// tolerating heading-level and case drift.
func matchHeading(line string) (string, bool) {
	stripped := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line, "#")))
	if stripped == "" || !strings.HasPrefix(line, "#") {
		return "", false
	}
	switch stripped {
	case "summary":
		return headingSummary, true
	case "topics":
		return headingTopics, true
	case "key questions", "questions":
		return headingQuestions, true
	case "decisions", "important decisions":
		return headingDecisions, true
	}
	return "", false
}

// appendListItem strips bullet markers and appends non-empty, non-"none"
// entries.
func appendListItem(list []string, line string) []string {
	item := strings.TrimSpace(line)
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(item, prefix) {
			item = strings.TrimSpace(strings.TrimPrefix(item, prefix))
			break
		}
	}
	// Numbered bullets: "1. foo" / "12) foo".
	if idx := strings.IndexAny(item, ".)"); idx > 0 && idx <= 3 {
		if isDigits(item[:idx]) {
			item = strings.TrimSpace(item[idx+1:])
		}
	}
	if item == "" || strings.EqualFold(item, "none") {
		return list
	}
	return append(list, item)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
