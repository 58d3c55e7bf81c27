package domain

import "time"

type PathStatus string

const (
	PathStatusDraft     PathStatus = "draft"
	PathStatusActive    PathStatus = "active"
	PathStatusCompleted PathStatus = "completed"
	PathStatusArchived  PathStatus = "archived"
	PathStatusFrozen    PathStatus = "frozen"
	PathStatusPaused    PathStatus = "paused"
)

func IsValidPathStatus(s PathStatus) bool {
	switch s {
	case PathStatusDraft, PathStatusActive, PathStatusCompleted,
		PathStatusArchived, PathStatusFrozen, PathStatusPaused:
		return true
	}
	return false
}

type NodeType string

const (
	NodeTypeConcept    NodeType = "concept"
	NodeTypePractice   NodeType = "practice"
	NodeTypeProject    NodeType = "project"
	NodeTypeAssessment NodeType = "assessment"
	NodeTypeMilestone  NodeType = "milestone"
)

func IsValidNodeType(t NodeType) bool {
	switch t {
	case NodeTypeConcept, NodeTypePractice, NodeTypeProject, NodeTypeAssessment, NodeTypeMilestone:
		return true
	}
	return false
}

type NodeStatus string

const (
	NodeStatusNotStarted NodeStatus = "not_started"
	NodeStatusInProgress NodeStatus = "in_progress"
	NodeStatusCompleted  NodeStatus = "completed"
	NodeStatusSkipped    NodeStatus = "skipped"
)

func IsValidNodeStatus(s NodeStatus) bool {
	switch s {
	case NodeStatusNotStarted, NodeStatusInProgress, NodeStatusCompleted, NodeStatusSkipped:
		return true
	}
	return false
}

// Node is one unit of work within a Path.
type Node struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Type             NodeType   `json:"type"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Difficulty       int        `json:"difficulty"`
	Skills           []string   `json:"skills"`
	Status           NodeStatus `json:"status"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// NodeDependency is a directed edge between two nodes of the same path.
type NodeDependency struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Milestone struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	NodeIDs []string `json:"nodeIds"`
}

// Path is an ordered curriculum of Nodes generated for a Goal.
type Path struct {
	ID                  string           `json:"id"`
	GoalID              string           `json:"goalId"`
	Title               string           `json:"title"`
	Description         string           `json:"description,omitempty"`
	TotalEstimatedHours float64          `json:"totalEstimatedHours"`
	Nodes               []Node           `json:"nodes"`
	Dependencies        []NodeDependency `json:"dependencies"`
	Milestones          []Milestone      `json:"milestones"`
	Status              PathStatus       `json:"status"`
	Version             string           `json:"version"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// TotalHours derives the estimated hour total from node minutes,
// rounded to two decimals.
func TotalHours(nodes []Node) float64 {
	minutes := 0
	for _, n := range nodes {
		minutes += n.EstimatedMinutes
	}
	hours := float64(minutes) / 60.0
	return float64(int(hours*100+0.5)) / 100
}

// CreatePathInput is the caller-supplied payload for PathRepo.Create.
// Nodes, dependency edges and milestones may be seeded at creation;
// a bare input yields an empty draft path.
type CreatePathInput struct {
	GoalID       string           `json:"goalId"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Nodes        []Node           `json:"nodes,omitempty"`
	Dependencies []NodeDependency `json:"dependencies,omitempty"`
	Milestones   []Milestone      `json:"milestones,omitempty"`
}

// PathPatch carries partial updates; nil fields are left untouched.
type PathPatch struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Nodes        []Node           `json:"nodes,omitempty"`
	Dependencies []NodeDependency `json:"dependencies,omitempty"`
	Milestones   []Milestone      `json:"milestones,omitempty"`
	Status       *PathStatus      `json:"status,omitempty"`
	Version      *string          `json:"version,omitempty"`
}
