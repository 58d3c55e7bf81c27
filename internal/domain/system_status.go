package domain

type LearningPhase string

const (
	PhaseAssessment   LearningPhase = "assessment"
	PhaseGoalSetting  LearningPhase = "goal_setting"
	PhasePathPlanning LearningPhase = "path_planning"
	PhaseLearning     LearningPhase = "learning"
	PhaseReview       LearningPhase = "review"
)

// SystemStatus is the derived, never-persisted health view handed to
// UI/API callers.
type SystemStatus struct {
	Phase              LearningPhase `json:"phase"`
	CompletionProgress float64       `json:"completionProgress"`
	Recommendations    []string      `json:"recommendations"`
	ActiveGoals        int           `json:"activeGoals"`
	ActivePaths        int           `json:"activePaths"`
	HasAbilityProfile  bool          `json:"hasAbilityProfile"`
	StorageOK          bool          `json:"storageOk"`
}

// GoalStats are on-demand counts over the goal collection.
type GoalStats struct {
	Total                 int                  `json:"total"`
	ByStatus              map[GoalStatus]int   `json:"byStatus"`
	ByCategory            map[GoalCategory]int `json:"byCategory"`
	AvgCompletionWeeks    int                  `json:"avgCompletionWeeks"`
	CompletedWithDuration int                  `json:"completedWithDuration"`
}

// PathStats are on-demand counts over the path collection.
type PathStats struct {
	Total             int                `json:"total"`
	ByStatus          map[PathStatus]int `json:"byStatus"`
	NodeCompletionPct float64            `json:"nodeCompletionPct"`
	NodesTotal        int                `json:"nodesTotal"`
	NodesCompleted    int                `json:"nodesCompleted"`
	NodesInProgress   int                `json:"nodesInProgress"`
	ActivePathCount   int                `json:"activePathCount"`
	TotalEstimatedHrs float64            `json:"totalEstimatedHours"`
}
