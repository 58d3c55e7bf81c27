package domain

import "time"

// EventLogCap bounds the document event log; the oldest entries are
// evicted first when the cap is exceeded.
const EventLogCap = 1000

// AgentActionLogCap bounds the agent-action log.
const AgentActionLogCap = 500

// Event is an append-only record of a core mutation.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// AgentAction is an opaque record of an agent-side operation, kept
// alongside events in the document.
type AgentAction struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Event type tags emitted by the repositories and services.
const (
	EventGoalCreated       = "goal_created"
	EventGoalUpdated       = "goal_updated"
	EventGoalDeleted       = "goal_deleted"
	EventGoalActivated     = "goal_activated"
	EventPathCreated       = "path_created"
	EventPathUpdated       = "path_updated"
	EventPathDeleted       = "path_deleted"
	EventPathActivated     = "path_activated"
	EventPathFrozen        = "path_frozen"
	EventNodeStatusChanged = "node_status_changed"
	EventCourseUnitCreated = "course_unit_created"
	EventCourseUnitUpdated = "course_unit_updated"
	EventCourseUnitDeleted = "course_unit_deleted"
)
