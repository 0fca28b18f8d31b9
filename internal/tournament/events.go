package tournament

import "github.com/lox/pokerclock/internal/structure"

// EventType represents a clock event type with type safety
type EventType string

// EventType constants for schedule transitions. The engine only reports
// them; playing sounds or flashing the display is up to the caller.
const (
	EventTypeLevelStarted     EventType = "level_started"
	EventTypeBreakStarted     EventType = "break_started"
	EventTypeScheduleComplete EventType = "schedule_complete"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is emitted when the clock moves between schedule entries.
type Event struct {
	Type  EventType
	Index int
	Entry structure.Entry
}
