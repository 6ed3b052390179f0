package chat

// Read-only projections over a transcript slice. These operate on the
// snapshot copies handed out by the store, never on live state.

// LastMessage returns the most recent Message item, skipping alerts,
// dividers and media.
func LastMessage(items []Item) (Message, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if msg, ok := items[i].(Message); ok {
			return msg, true
		}
	}
	return Message{}, false
}

// MessagesByRole filters Message items with the given role, preserving
// transcript order.
func MessagesByRole(items []Item, role string) []Message {
	var result []Message
	for _, item := range items {
		if msg, ok := item.(Message); ok && msg.Role == role {
			result = append(result, msg)
		}
	}
	return result
}

// Messages returns all Message items in transcript order.
func Messages(items []Item) []Message {
	var result []Message
	for _, item := range items {
		if msg, ok := item.(Message); ok {
			result = append(result, msg)
		}
	}
	return result
}
