package domain

import (
	"encoding/json"
	"time"
)

type CourseUnitType string

const (
	CourseUnitTypeLesson   CourseUnitType = "lesson"
	CourseUnitTypeExercise CourseUnitType = "exercise"
	CourseUnitTypeQuiz     CourseUnitType = "quiz"
	CourseUnitTypeReading  CourseUnitType = "reading"
	CourseUnitTypeVideo    CourseUnitType = "video"
)

func IsValidCourseUnitType(t CourseUnitType) bool {
	switch t {
	case CourseUnitTypeLesson, CourseUnitTypeExercise, CourseUnitTypeQuiz,
		CourseUnitTypeReading, CourseUnitTypeVideo:
		return true
	}
	return false
}

type CourseUnitMetadata struct {
	Difficulty         int      `json:"difficulty"`
	EstimatedTime      int      `json:"estimatedTime"`
	Keywords           []string `json:"keywords"`
	LearningObjectives []string `json:"learningObjectives"`
}

// CourseUnit is the learning content bound to a path Node.
type CourseUnit struct {
	ID          string             `json:"id"`
	NodeID      string             `json:"nodeId"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Type        CourseUnitType     `json:"type"`
	Content     json.RawMessage    `json:"content,omitempty"`
	Metadata    CourseUnitMetadata `json:"metadata"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type CreateCourseUnitInput struct {
	NodeID      string             `json:"nodeId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        CourseUnitType     `json:"type"`
	Content     json.RawMessage    `json:"content"`
	Metadata    CourseUnitMetadata `json:"metadata"`
}

type CourseUnitPatch struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Type        *CourseUnitType     `json:"type,omitempty"`
	Content     json.RawMessage     `json:"content,omitempty"`
	Metadata    *CourseUnitMetadata `json:"metadata,omitempty"`
}
