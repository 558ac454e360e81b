package medichat

// Role is the coarse permission tag carried by an identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
	// SenderSystem is never produced by the client; history derivation
	// still excludes it.
	SenderSystem Sender = "system"
)

// HistoryRole is the role of a history entry as the chat endpoint expects it.
type HistoryRole string

const (
	HistoryUser      HistoryRole = "user"
	HistoryAssistant HistoryRole = "assistant"
)
