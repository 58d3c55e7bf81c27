package repos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	pkgerrors "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

type GoalRepo interface {
	GetAll(ctx context.Context, profileID string) ([]domain.Goal, error)
	GetByID(ctx context.Context, profileID, id string) (*domain.Goal, error)
	GetByStatus(ctx context.Context, profileID string, status domain.GoalStatus) ([]domain.Goal, error)
	GetByCategory(ctx context.Context, profileID string, category domain.GoalCategory) ([]domain.Goal, error)
	Search(ctx context.Context, profileID, query string) ([]domain.Goal, error)
	Create(ctx context.Context, profileID string, input domain.CreateGoalInput) (*domain.Goal, error)
	Update(ctx context.Context, profileID, id string, patch domain.GoalPatch) (*domain.Goal, error)
	Delete(ctx context.Context, profileID, id string) (bool, error)
	Validate(input domain.CreateGoalInput) *domain.ValidationResult

	Activate(ctx context.Context, profileID, id string) (*domain.Goal, error)
	Pause(ctx context.Context, profileID, id string) (*domain.Goal, error)
	Complete(ctx context.Context, profileID, id string) (*domain.Goal, error)
	Cancel(ctx context.Context, profileID, id string) (*domain.Goal, error)
}

type goalRepo struct {
	store *store.CoreStore
	log   *logger.Logger
}

func NewGoalRepo(coreStore *store.CoreStore, baseLog *logger.Logger) GoalRepo {
	repoLog := baseLog.With("repo", "GoalRepo")
	return &goalRepo{store: coreStore, log: repoLog}
}

func (r *goalRepo) GetAll(ctx context.Context, profileID string) ([]domain.Goal, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return doc.Goals, nil
}

func (r *goalRepo) GetByID(ctx context.Context, profileID, id string) (*domain.Goal, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if i := doc.GoalByID(id); i >= 0 {
		g := doc.Goals[i]
		return &g, nil
	}
	return nil, nil
}

func (r *goalRepo) GetByStatus(ctx context.Context, profileID string, status domain.GoalStatus) ([]domain.Goal, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := []domain.Goal{}
	for _, g := range doc.Goals {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *goalRepo) GetByCategory(ctx context.Context, profileID string, category domain.GoalCategory) ([]domain.Goal, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := []domain.Goal{}
	for _, g := range doc.Goals {
		if g.Category == category {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *goalRepo) Search(ctx context.Context, profileID, query string) ([]domain.Goal, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.Goal{}
	if q == "" {
		return out, nil
	}
	for _, g := range doc.Goals {
		if goalMatches(g, q) {
			out = append(out, g)
		}
	}
	return out, nil
}

func goalMatches(g domain.Goal, q string) bool {
	if strings.Contains(strings.ToLower(g.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Description), q) {
		return true
	}
	for _, s := range g.RequiredSkills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func (r *goalRepo) Validate(input domain.CreateGoalInput) *domain.ValidationResult {
	res := domain.NewValidationResult()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		res.AddError("title", "required", "title is required")
	} else if len(title) > 100 {
		res.AddError("title", "too_long", "title must be 100 characters or fewer")
	}

	if strings.TrimSpace(input.Description) == "" {
		res.AddWarning("description", "recommended", "a description helps tailor the learning path")
	} else if len(input.Description) > 1000 {
		res.AddError("description", "too_long", "description must be 1000 characters or fewer")
	}

	if !domain.IsValidGoalCategory(input.Category) {
		res.AddError("category", "invalid_enum", fmt.Sprintf("category %q is not recognized", input.Category))
	}

	if input.Priority < 1 || input.Priority > 5 {
		res.AddError("priority", "out_of_range", "priority must be between 1 and 5")
	}

	if !domain.IsValidTargetLevel(input.TargetLevel) {
		res.AddError("targetLevel", "invalid_enum", fmt.Sprintf("target level %q is not recognized", input.TargetLevel))
	}

	if input.EstimatedTimeWeeks <= 0 {
		res.AddError("estimatedTimeWeeks", "out_of_range", "estimated time must be greater than zero weeks")
	} else if input.EstimatedTimeWeeks > 104 {
		res.AddWarning("estimatedTimeWeeks", "very_long", "goals longer than two years are hard to sustain")
	}

	if len(input.RequiredSkills) == 0 {
		res.AddWarning("requiredSkills", "recommended", "listing required skills improves path generation")
	}
	if len(input.Outcomes) == 0 {
		res.AddWarning("outcomes", "recommended", "listing outcomes improves progress tracking")
	}

	return res
}

func (r *goalRepo) Create(ctx context.Context, profileID string, input domain.CreateGoalInput) (*domain.Goal, error) {
	res := r.Validate(input)
	if err := res.Err("goal"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	goal := domain.Goal{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Category:           input.Category,
		Priority:           input.Priority,
		TargetLevel:        input.TargetLevel,
		EstimatedTimeWeeks: input.EstimatedTimeWeeks,
		RequiredSkills:     emptyIfNil(input.RequiredSkills),
		Outcomes:           emptyIfNil(input.Outcomes),
		Status:             domain.GoalStatusPaused,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		doc.Goals = append(doc.Goals, goal)
		doc.AppendEvent(newEvent(domain.EventGoalCreated, map[string]any{
			"goalId":   goal.ID,
			"title":    goal.Title,
			"category": string(goal.Category),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("Goal created", "profile_id", profileID, "goal_id", goal.ID)
	return &goal, nil
}

func (r *goalRepo) Update(ctx context.Context, profileID, id string, patch domain.GoalPatch) (*domain.Goal, error) {
	var updated domain.Goal
	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.GoalByID(id)
		if i < 0 {
			return &pkgerrors.NotFoundError{Kind: "goal", ID: id}
		}
		goal := doc.Goals[i]
		changed := applyGoalPatch(&goal, patch)
		if len(changed) == 0 {
			updated = goal
			return nil
		}

		res := r.Validate(domain.CreateGoalInput{
			Title:              goal.Title,
			Description:        goal.Description,
			Category:           goal.Category,
			Priority:           goal.Priority,
			TargetLevel:        goal.TargetLevel,
			EstimatedTimeWeeks: goal.EstimatedTimeWeeks,
			RequiredSkills:     goal.RequiredSkills,
			Outcomes:           goal.Outcomes,
		})
		if !domain.IsValidGoalStatus(goal.Status) {
			res.AddError("status", "invalid_enum", fmt.Sprintf("status %q is not recognized", goal.Status))
		}
		if err := res.Err("goal"); err != nil {
			return err
		}

		// Ceiling is enforced at the update boundary, not just in the
		// named activation entry point.
		if goal.Status == domain.GoalStatusActive && doc.Goals[i].Status != domain.GoalStatusActive {
			if active := doc.ActiveGoalCount(); active >= domain.ActiveGoalLimit {
				return &pkgerrors.ActivationLimitError{Limit: domain.ActiveGoalLimit, Active: active}
			}
		}

		goal.UpdatedAt = time.Now().UTC()
		doc.Goals[i] = goal
		doc.AppendEvent(newEvent(domain.EventGoalUpdated, map[string]any{
			"goalId":        goal.ID,
			"changedFields": changed,
		}))
		updated = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete cascades Goal -> Paths -> CourseUnits top-down and reports
// non-existence as false rather than an error.
func (r *goalRepo) Delete(ctx context.Context, profileID, id string) (bool, error) {
	existing, err := r.GetByID(ctx, profileID, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	_, err = r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.GoalByID(id)
		if i < 0 {
			return nil
		}

		removedPaths := []string{}
		removedNodes := map[string]bool{}
		keptPaths := doc.Paths[:0]
		for _, p := range doc.Paths {
			if p.GoalID != id {
				keptPaths = append(keptPaths, p)
				continue
			}
			removedPaths = append(removedPaths, p.ID)
			for _, n := range p.Nodes {
				removedNodes[n.ID] = true
			}
		}
		doc.Paths = keptPaths

		removedUnits := []string{}
		keptUnits := doc.CourseUnits[:0]
		for _, u := range doc.CourseUnits {
			if removedNodes[u.NodeID] {
				removedUnits = append(removedUnits, u.ID)
				continue
			}
			keptUnits = append(keptUnits, u)
		}
		doc.CourseUnits = keptUnits

		doc.Goals = append(doc.Goals[:i], doc.Goals[i+1:]...)
		doc.AppendEvent(newEvent(domain.EventGoalDeleted, map[string]any{
			"goalId":            id,
			"cascadedPathCount": len(removedPaths),
			"removedPathIds":    removedPaths,
			"removedUnitIds":    removedUnits,
		}))
		return nil
	})
	if err != nil {
		return false, err
	}
	r.log.Info("Goal deleted", "profile_id", profileID, "goal_id", id)
	return true, nil
}

func (r *goalRepo) Activate(ctx context.Context, profileID, id string) (*domain.Goal, error) {
	status := domain.GoalStatusActive
	return r.Update(ctx, profileID, id, domain.GoalPatch{Status: &status})
}

func (r *goalRepo) Pause(ctx context.Context, profileID, id string) (*domain.Goal, error) {
	status := domain.GoalStatusPaused
	return r.Update(ctx, profileID, id, domain.GoalPatch{Status: &status})
}

func (r *goalRepo) Complete(ctx context.Context, profileID, id string) (*domain.Goal, error) {
	status := domain.GoalStatusCompleted
	return r.Update(ctx, profileID, id, domain.GoalPatch{Status: &status})
}

func (r *goalRepo) Cancel(ctx context.Context, profileID, id string) (*domain.Goal, error) {
	status := domain.GoalStatusCancelled
	return r.Update(ctx, profileID, id, domain.GoalPatch{Status: &status})
}

func applyGoalPatch(goal *domain.Goal, patch domain.GoalPatch) []string {
	changed := []string{}
	if patch.Title != nil && *patch.Title != goal.Title {
		goal.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Description != nil && *patch.Description != goal.Description {
		goal.Description = *patch.Description
		changed = append(changed, "description")
	}
	if patch.Category != nil && *patch.Category != goal.Category {
		goal.Category = *patch.Category
		changed = append(changed, "category")
	}
	if patch.Priority != nil && *patch.Priority != goal.Priority {
		goal.Priority = *patch.Priority
		changed = append(changed, "priority")
	}
	if patch.TargetLevel != nil && *patch.TargetLevel != goal.TargetLevel {
		goal.TargetLevel = *patch.TargetLevel
		changed = append(changed, "targetLevel")
	}
	if patch.EstimatedTimeWeeks != nil && *patch.EstimatedTimeWeeks != goal.EstimatedTimeWeeks {
		goal.EstimatedTimeWeeks = *patch.EstimatedTimeWeeks
		changed = append(changed, "estimatedTimeWeeks")
	}
	if patch.RequiredSkills != nil && !equalStrings(patch.RequiredSkills, goal.RequiredSkills) {
		goal.RequiredSkills = patch.RequiredSkills
		changed = append(changed, "requiredSkills")
	}
	if patch.Outcomes != nil && !equalStrings(patch.Outcomes, goal.Outcomes) {
		goal.Outcomes = patch.Outcomes
		changed = append(changed, "outcomes")
	}
	if patch.Status != nil && *patch.Status != goal.Status {
		goal.Status = *patch.Status
		changed = append(changed, "status")
	}
	return changed
}

func newEvent(eventType string, data map[string]any) domain.Event {
	return domain.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
