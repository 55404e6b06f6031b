package domain

// MessageKind selects how a transient notification is styled.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Notice is one transient notification shown to the user.
type Notice struct {
	Text string      `json:"text"`
	Kind MessageKind `json:"kind"`
}
