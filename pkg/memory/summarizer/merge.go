package summarizer

import "strings"

// mergeOrdered unions prior and fresh entries preserving first-seen order,
// deduplicating case-insensitively, and capping the result at max entries.
// When capping, the oldest entries are dropped first so the list tracks the
// conversation's current direction. Merging the same content twice is a
// no-op, which keeps repeated summarization passes idempotent.
func mergeOrdered(prior, fresh []string, max int) []string {
	merged := make([]string, 0, len(prior)+len(fresh))
	seen := make(map[string]bool, len(prior)+len(fresh))

	for _, list := range [][]string{prior, fresh} {
		for _, entry := range list {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			key := strings.ToLower(entry)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, entry)
		}
	}

	if max > 0 && len(merged) > max {
		merged = merged[len(merged)-max:]
	}
	return merged
}
