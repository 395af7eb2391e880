package events

import "encoding/json"

// Event defines a type that can yield itself as JSON bytes.
type Event interface {
	Yield() []byte
	EventAction() string
	IsSuccessful() bool
}

// ItemChange is emitted after every item write or delete.
type ItemChange struct {
	Action      string `json:"action"`
	Wiki        string `json:"wiki"`
	Application string `json:"application"`
	ItemID      string `json:"item_id"`
	UserID      string `json:"user_id"`
	Timestamp   string `json:"timestamp"`
	Success     bool   `json:"success"`
}

// Yield satisfies the Event interface.
func (i ItemChange) Yield() []byte {
	b, _ := json.Marshal(i)
	return b
}

// EventAction satisfies the Event interface.
func (i ItemChange) EventAction() string {
	return i.Action
}

// IsSuccessful satisfies the Event interface.
func (i ItemChange) IsSuccessful() bool {
	return i.Success
}
