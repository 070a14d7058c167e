package fs

import (
	"fmt"

	"github.com/stratumdoc/stratum/pkg/core"
)

// EventType represents the type of change observed in a workspace.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to one document in one layer. Consumers
// typically react by re-running composition.
type Event struct {
	Type      EventType
	Layer     core.Layer
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s/%s", e.Type, e.Layer, e.ID)
}
