package repos

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	pkgerrors "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"
)

func TestCourseUnitCreateRequiresExistingNode(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.units.Create(context.Background(), testProfile, domain.CreateCourseUnitInput{
		NodeID: "ghost",
		Title:  "Orphan lesson",
		Type:   domain.CourseUnitTypeLesson,
	})
	if !pkgerrors.IsValidation(err) {
		t.Fatalf("err=%v, want validation error", err)
	}
	ve, _ := pkgerrors.AsValidation(err)
	found := false
	for _, fe := range ve.Fields {
		if fe.Field == "nodeId" && fe.Code == "invalid_reference" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no nodeId invalid_reference in %+v", ve.Fields)
	}
}

func TestCourseUnitCreateRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := mustCreateGoal(t, env, "Learn Go")
	path := mustCreatePath(t, env, goal.ID, "Go path", []domain.Node{
		{Title: "Basics", Type: domain.NodeTypeConcept},
	})

	_, err := env.units.Create(ctx, testProfile, domain.CreateCourseUnitInput{
		NodeID: path.Nodes[0].ID,
		Title:  "Mystery",
		Type:   "hologram",
	})
	if !pkgerrors.IsValidation(err) {
		t.Fatalf("err=%v, want validation error", err)
	}
}

func TestCourseUnitLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	goal := mustCreateGoal(t, env, "Learn Go")
	path := mustCreatePath(t, env, goal.ID, "Go path", []domain.Node{
		{Title: "Basics", Type: domain.NodeTypeConcept},
		{Title: "Practice", Type: domain.NodeTypePractice},
	})

	unit, err := env.units.Create(ctx, testProfile, domain.CreateCourseUnitInput{
		NodeID:  path.Nodes[0].ID,
		Title:   "Intro lesson",
		Type:    domain.CourseUnitTypeLesson,
		Content: json.RawMessage(`{"body":"hello"}`),
		Metadata: domain.CourseUnitMetadata{
			Difficulty:    2,
			EstimatedTime: 30,
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if unit.Metadata.Keywords == nil || unit.Metadata.LearningObjectives == nil {
		t.Fatalf("metadata slices not normalized: %+v", unit.Metadata)
	}

	byNode, err := env.units.GetByNode(ctx, testProfile, path.Nodes[0].ID)
	if err != nil {
		t.Fatalf("GetByNode failed: %v", err)
	}
	if len(byNode) != 1 || byNode[0].ID != unit.ID {
		t.Fatalf("GetByNode=%+v, want the created unit", byNode)
	}
	if other, _ := env.units.GetByNode(ctx, testProfile, path.Nodes[1].ID); len(other) != 0 {
		t.Fatalf("unit attributed to wrong node")
	}

	title := "Intro lesson v2"
	updated, err := env.units.Update(ctx, testProfile, unit.ID, domain.CourseUnitPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title=%q, want %q", updated.Title, title)
	}

	deleted, err := env.units.Delete(ctx, testProfile, unit.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete=(%v, %v), want (true, nil)", deleted, err)
	}
	again, err := env.units.Delete(ctx, testProfile, unit.ID)
	if err != nil || again {
		t.Fatalf("second Delete=(%v, %v), want (false, nil)", again, err)
	}
}

func TestCourseUnitUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)
	title := "nope"
	_, err := env.units.Update(context.Background(), testProfile, "missing", domain.CourseUnitPatch{Title: &title})
	if !pkgerrors.IsNotFound(err) {
		t.Fatalf("err=%v, want not found", err)
	}
}
