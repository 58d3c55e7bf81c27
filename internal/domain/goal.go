package domain

import "time"

// ActiveGoalLimit caps concurrently active goals.
const ActiveGoalLimit = 3

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

func IsValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusActive, GoalStatusPaused, GoalStatusCompleted, GoalStatusCancelled:
		return true
	}
	return false
}

type GoalCategory string

const (
	CategoryFrontend        GoalCategory = "frontend"
	CategoryBackend         GoalCategory = "backend"
	CategoryFullstack       GoalCategory = "fullstack"
	CategoryMobile          GoalCategory = "mobile"
	CategoryDevOps          GoalCategory = "devops"
	CategoryDataScience     GoalCategory = "data_science"
	CategoryMachineLearning GoalCategory = "machine_learning"
	CategoryDesign          GoalCategory = "design"
	CategorySoftSkills      GoalCategory = "soft_skills"
)

func GoalCategories() []GoalCategory {
	return []GoalCategory{
		CategoryFrontend,
		CategoryBackend,
		CategoryFullstack,
		CategoryMobile,
		CategoryDevOps,
		CategoryDataScience,
		CategoryMachineLearning,
		CategoryDesign,
		CategorySoftSkills,
	}
}

func IsValidGoalCategory(c GoalCategory) bool {
	for _, v := range GoalCategories() {
		if v == c {
			return true
		}
	}
	return false
}

type TargetLevel string

const (
	TargetLevelBeginner     TargetLevel = "beginner"
	TargetLevelIntermediate TargetLevel = "intermediate"
	TargetLevelAdvanced     TargetLevel = "advanced"
	TargetLevelExpert       TargetLevel = "expert"
)

func IsValidTargetLevel(l TargetLevel) bool {
	switch l {
	case TargetLevelBeginner, TargetLevelIntermediate, TargetLevelAdvanced, TargetLevelExpert:
		return true
	}
	return false
}

// Goal is a user-declared learning objective.
type Goal struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	Category           GoalCategory `json:"category"`
	Priority           int          `json:"priority"`
	TargetLevel        TargetLevel  `json:"targetLevel"`
	EstimatedTimeWeeks int          `json:"estimatedTimeWeeks"`
	RequiredSkills     []string     `json:"requiredSkills"`
	Outcomes           []string     `json:"outcomes"`
	Status             GoalStatus   `json:"status"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// CreateGoalInput is the caller-supplied payload for GoalRepo.Create.
type CreateGoalInput struct {
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Category           GoalCategory `json:"category"`
	Priority           int          `json:"priority"`
	TargetLevel        TargetLevel  `json:"targetLevel"`
	EstimatedTimeWeeks int          `json:"estimatedTimeWeeks"`
	RequiredSkills     []string     `json:"requiredSkills"`
	Outcomes           []string     `json:"outcomes"`
}

// GoalPatch carries partial updates; nil fields are left untouched.
type GoalPatch struct {
	Title              *string       `json:"title,omitempty"`
	Description        *string       `json:"description,omitempty"`
	Category           *GoalCategory `json:"category,omitempty"`
	Priority           *int          `json:"priority,omitempty"`
	TargetLevel        *TargetLevel  `json:"targetLevel,omitempty"`
	EstimatedTimeWeeks *int          `json:"estimatedTimeWeeks,omitempty"`
	RequiredSkills     []string      `json:"requiredSkills,omitempty"`
	Outcomes           []string      `json:"outcomes,omitempty"`
	Status             *GoalStatus   `json:"status,omitempty"`
}
