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

type CourseUnitRepo interface {
	GetAll(ctx context.Context, profileID string) ([]domain.CourseUnit, error)
	GetByID(ctx context.Context, profileID, id string) (*domain.CourseUnit, error)
	GetByNode(ctx context.Context, profileID, nodeID string) ([]domain.CourseUnit, error)
	Create(ctx context.Context, profileID string, input domain.CreateCourseUnitInput) (*domain.CourseUnit, error)
	Update(ctx context.Context, profileID, id string, patch domain.CourseUnitPatch) (*domain.CourseUnit, error)
	Delete(ctx context.Context, profileID, id string) (bool, error)
}

type courseUnitRepo struct {
	store *store.CoreStore
	log   *logger.Logger
}

func NewCourseUnitRepo(coreStore *store.CoreStore, baseLog *logger.Logger) CourseUnitRepo {
	repoLog := baseLog.With("repo", "CourseUnitRepo")
	return &courseUnitRepo{store: coreStore, log: repoLog}
}

func (r *courseUnitRepo) GetAll(ctx context.Context, profileID string) ([]domain.CourseUnit, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return doc.CourseUnits, nil
}

func (r *courseUnitRepo) GetByID(ctx context.Context, profileID, id string) (*domain.CourseUnit, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if i := doc.CourseUnitByID(id); i >= 0 {
		u := doc.CourseUnits[i]
		return &u, nil
	}
	return nil, nil
}

func (r *courseUnitRepo) GetByNode(ctx context.Context, profileID, nodeID string) ([]domain.CourseUnit, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := []domain.CourseUnit{}
	for _, u := range doc.CourseUnits {
		if u.NodeID == nodeID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *courseUnitRepo) Create(ctx context.Context, profileID string, input domain.CreateCourseUnitInput) (*domain.CourseUnit, error) {
	now := time.Now().UTC()
	unit := domain.CourseUnit{
		ID:          uuid.NewString(),
		NodeID:      strings.TrimSpace(input.NodeID),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Type:        input.Type,
		Content:     input.Content,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if unit.Metadata.Keywords == nil {
		unit.Metadata.Keywords = []string{}
	}
	if unit.Metadata.LearningObjectives == nil {
		unit.Metadata.LearningObjectives = []string{}
	}

	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		res := validateCourseUnit(doc, unit)
		if err := res.Err("courseUnit"); err != nil {
			return err
		}
		doc.CourseUnits = append(doc.CourseUnits, unit)
		doc.AppendEvent(newEvent(domain.EventCourseUnitCreated, map[string]any{
			"unitId": unit.ID,
			"nodeId": unit.NodeID,
			"title":  unit.Title,
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("Course unit created", "profile_id", profileID, "unit_id", unit.ID, "node_id", unit.NodeID)
	return &unit, nil
}

func (r *courseUnitRepo) Update(ctx context.Context, profileID, id string, patch domain.CourseUnitPatch) (*domain.CourseUnit, error) {
	var updated domain.CourseUnit
	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.CourseUnitByID(id)
		if i < 0 {
			return &pkgerrors.NotFoundError{Kind: "courseUnit", ID: id}
		}
		unit := doc.CourseUnits[i]
		changed := []string{}
		if patch.Title != nil && *patch.Title != unit.Title {
			unit.Title = *patch.Title
			changed = append(changed, "title")
		}
		if patch.Description != nil && *patch.Description != unit.Description {
			unit.Description = *patch.Description
			changed = append(changed, "description")
		}
		if patch.Type != nil && *patch.Type != unit.Type {
			unit.Type = *patch.Type
			changed = append(changed, "type")
		}
		if patch.Content != nil {
			unit.Content = patch.Content
			changed = append(changed, "content")
		}
		if patch.Metadata != nil {
			unit.Metadata = *patch.Metadata
			changed = append(changed, "metadata")
		}
		if len(changed) == 0 {
			updated = unit
			return nil
		}

		res := validateCourseUnit(doc, unit)
		if err := res.Err("courseUnit"); err != nil {
			return err
		}

		unit.UpdatedAt = time.Now().UTC()
		doc.CourseUnits[i] = unit
		doc.AppendEvent(newEvent(domain.EventCourseUnitUpdated, map[string]any{
			"unitId":        unit.ID,
			"changedFields": changed,
		}))
		updated = unit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *courseUnitRepo) Delete(ctx context.Context, profileID, id string) (bool, error) {
	existing, err := r.GetByID(ctx, profileID, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	_, err = r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.CourseUnitByID(id)
		if i < 0 {
			return nil
		}
		doc.CourseUnits = append(doc.CourseUnits[:i], doc.CourseUnits[i+1:]...)
		doc.AppendEvent(newEvent(domain.EventCourseUnitDeleted, map[string]any{
			"unitId": id,
		}))
		return nil
	})
	if err != nil {
		return false, err
	}
	r.log.Info("Course unit deleted", "profile_id", profileID, "unit_id", id)
	return true, nil
}

// validateCourseUnit checks fields plus the node foreign key, which
// must resolve to a node of some existing path.
func validateCourseUnit(doc *domain.Document, unit domain.CourseUnit) *domain.ValidationResult {
	res := domain.NewValidationResult()

	if strings.TrimSpace(unit.Title) == "" {
		res.AddError("title", "required", "title is required")
	} else if len(unit.Title) > 200 {
		res.AddError("title", "too_long", "title must be 200 characters or fewer")
	}

	if unit.NodeID == "" {
		res.AddError("nodeId", "required", "nodeId is required")
	} else if ni, _ := doc.NodeByID(unit.NodeID); ni < 0 {
		res.AddError("nodeId", "invalid_reference", fmt.Sprintf("node %q does not exist in any path", unit.NodeID))
	}

	if !domain.IsValidCourseUnitType(unit.Type) {
		res.AddError("type", "invalid_enum", fmt.Sprintf("course unit type %q is not recognized", unit.Type))
	}

	return res
}
