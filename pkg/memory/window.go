package memory

import "github.com/entrhq/recall/pkg/types"

// Select partitions ordered history into an older head (candidate for
// compression) and a recent tail of exactly the last keepN messages, or all
// of them if fewer exist. Both slices preserve original order and alias the
// input's backing array; Select never copies or mutates messages.
func Select(messages []*types.Message, keepN int) (older, recent []*types.Message) {
	if keepN < 0 {
		keepN = 0
	}
	if len(messages) <= keepN {
		return nil, messages
	}
	cut := len(messages) - keepN
	return messages[:cut], messages[cut:]
}
