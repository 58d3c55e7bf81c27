package domain

import "time"

// SchemaVersion tags the persisted document layout.
const SchemaVersion = "1.0.0"

type DocumentMetadata struct {
	Version        string    `json:"version"`
	LastUpdated    time.Time `json:"lastUpdated"`
	TotalStudyTime int       `json:"totalStudyTime"`
	StreakDays     int       `json:"streakDays"`
}

// Document is the single per-profile blob persisted under the
// "coreData" key. It must round-trip through JSON without loss.
type Document struct {
	Events       []Event          `json:"events"`
	Goals        []Goal           `json:"goals"`
	Paths        []Path           `json:"paths"`
	CourseUnits  []CourseUnit     `json:"courseUnits"`
	AgentActions []AgentAction    `json:"agentActions"`
	Metadata     DocumentMetadata `json:"metadata"`
}

// NewDocument synthesizes the default document for a fresh profile.
func NewDocument(now time.Time) *Document {
	return &Document{
		Events:       []Event{},
		Goals:        []Goal{},
		Paths:        []Path{},
		CourseUnits:  []CourseUnit{},
		AgentActions: []AgentAction{},
		Metadata: DocumentMetadata{
			Version:     SchemaVersion,
			LastUpdated: now,
		},
	}
}

// GoalByID returns the index of the goal or -1.
func (d *Document) GoalByID(id string) int {
	for i := range d.Goals {
		if d.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

// PathByID returns the index of the path or -1.
func (d *Document) PathByID(id string) int {
	for i := range d.Paths {
		if d.Paths[i].ID == id {
			return i
		}
	}
	return -1
}

// CourseUnitByID returns the index of the course unit or -1.
func (d *Document) CourseUnitByID(id string) int {
	for i := range d.CourseUnits {
		if d.CourseUnits[i].ID == id {
			return i
		}
	}
	return -1
}

// NodeByID resolves a node id across every path; the second return is
// the owning path index, both -1 when the node does not exist.
func (d *Document) NodeByID(nodeID string) (nodeIdx, pathIdx int) {
	for pi := range d.Paths {
		for ni := range d.Paths[pi].Nodes {
			if d.Paths[pi].Nodes[ni].ID == nodeID {
				return ni, pi
			}
		}
	}
	return -1, -1
}

// AppendEvent appends to the bounded event log, evicting the oldest
// entries past EventLogCap.
func (d *Document) AppendEvent(ev Event) {
	d.Events = append(d.Events, ev)
	if len(d.Events) > EventLogCap {
		d.Events = d.Events[len(d.Events)-EventLogCap:]
	}
}

// AppendAgentAction appends to the bounded agent-action log.
func (d *Document) AppendAgentAction(act AgentAction) {
	d.AgentActions = append(d.AgentActions, act)
	if len(d.AgentActions) > AgentActionLogCap {
		d.AgentActions = d.AgentActions[len(d.AgentActions)-AgentActionLogCap:]
	}
}

// ActiveGoalCount counts goals with status active.
func (d *Document) ActiveGoalCount() int {
	n := 0
	for i := range d.Goals {
		if d.Goals[i].Status == GoalStatusActive {
			n++
		}
	}
	return n
}
