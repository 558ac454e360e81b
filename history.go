package medichat

// MaxHistory bounds the number of history entries sent with a chat turn.
const MaxHistory = 4

// HistoryEntry is one role-mapped turn of conversation context.
type HistoryEntry struct {
	Role    HistoryRole `json:"role"`
	Content string      `json:"content"`
}

// History derives the bounded snapshot sent as chat context: messages with
// empty text or system origin are skipped, at most the last MaxHistory
// remain in original order, and user maps to "user" while anything else maps
// to "assistant".
func History(msgs []Message) []HistoryEntry {
	kept := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Text == "" || m.Sender == SenderSystem {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) > MaxHistory {
		kept = kept[len(kept)-MaxHistory:]
	}
	out := make([]HistoryEntry, len(kept))
	for i, m := range kept {
		role := HistoryAssistant
		if m.Sender == SenderUser {
			role = HistoryUser
		}
		out[i] = HistoryEntry{Role: role, Content: m.Text}
	}
	return out
}
