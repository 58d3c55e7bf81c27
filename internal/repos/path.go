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

// PathVersionInitial seeds the version tag on freshly created paths.
const PathVersionInitial = "1"

type PathRepo interface {
	GetAll(ctx context.Context, profileID string) ([]domain.Path, error)
	GetAllByGoal(ctx context.Context, profileID, goalID string) ([]domain.Path, error)
	GetByID(ctx context.Context, profileID, id string) (*domain.Path, error)
	Create(ctx context.Context, profileID string, input domain.CreatePathInput) (*domain.Path, error)
	Update(ctx context.Context, profileID, id string, patch domain.PathPatch) (*domain.Path, error)
	Delete(ctx context.Context, profileID, id string) (bool, error)
	UpdateNodeStatus(ctx context.Context, profileID, pathID, nodeID string, status domain.NodeStatus) (*domain.Path, error)
}

type pathRepo struct {
	store *store.CoreStore
	log   *logger.Logger
}

func NewPathRepo(coreStore *store.CoreStore, baseLog *logger.Logger) PathRepo {
	repoLog := baseLog.With("repo", "PathRepo")
	return &pathRepo{store: coreStore, log: repoLog}
}

func (r *pathRepo) GetAll(ctx context.Context, profileID string) ([]domain.Path, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return doc.Paths, nil
}

func (r *pathRepo) GetAllByGoal(ctx context.Context, profileID, goalID string) ([]domain.Path, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	out := []domain.Path{}
	for _, p := range doc.Paths {
		if p.GoalID == goalID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *pathRepo) GetByID(ctx context.Context, profileID, id string) (*domain.Path, error) {
	doc, err := r.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if i := doc.PathByID(id); i >= 0 {
		p := doc.Paths[i]
		return &p, nil
	}
	return nil, nil
}

func (r *pathRepo) Create(ctx context.Context, profileID string, input domain.CreatePathInput) (*domain.Path, error) {
	now := time.Now().UTC()
	path := domain.Path{
		ID:           uuid.NewString(),
		GoalID:       strings.TrimSpace(input.GoalID),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Nodes:        normalizeNodes(input.Nodes),
		Dependencies: input.Dependencies,
		Milestones:   input.Milestones,
		Status:       domain.PathStatusDraft,
		Version:      PathVersionInitial,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if path.Dependencies == nil {
		path.Dependencies = []domain.NodeDependency{}
	}
	if path.Milestones == nil {
		path.Milestones = []domain.Milestone{}
	}
	path.TotalEstimatedHours = domain.TotalHours(path.Nodes)

	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		res := validatePath(doc, path)
		if err := res.Err("path"); err != nil {
			return err
		}
		doc.Paths = append(doc.Paths, path)
		doc.AppendEvent(newEvent(domain.EventPathCreated, map[string]any{
			"pathId":    path.ID,
			"goalId":    path.GoalID,
			"title":     path.Title,
			"nodeCount": len(path.Nodes),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Info("Path created", "profile_id", profileID, "path_id", path.ID, "goal_id", path.GoalID)
	return &path, nil
}

func (r *pathRepo) Update(ctx context.Context, profileID, id string, patch domain.PathPatch) (*domain.Path, error) {
	var updated domain.Path
	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.PathByID(id)
		if i < 0 {
			return &pkgerrors.NotFoundError{Kind: "path", ID: id}
		}
		path := doc.Paths[i]
		changed := applyPathPatch(&path, patch)
		if len(changed) == 0 {
			updated = path
			return nil
		}

		res := validatePath(doc, path)
		if !domain.IsValidPathStatus(path.Status) {
			res.AddError("status", "invalid_enum", fmt.Sprintf("status %q is not recognized", path.Status))
		}
		// Path exclusivity per goal is a cross-entity rule; the generic
		// update refuses to create a second active sibling and points
		// callers at the activation flow, which freezes siblings first.
		if path.Status == domain.PathStatusActive && doc.Paths[i].Status != domain.PathStatusActive {
			for j := range doc.Paths {
				if j != i && doc.Paths[j].GoalID == path.GoalID && doc.Paths[j].Status == domain.PathStatusActive {
					res.AddError("status", "exclusive_active", "another path of this goal is already active; use the activation flow")
					break
				}
			}
		}
		if err := res.Err("path"); err != nil {
			return err
		}

		path.TotalEstimatedHours = domain.TotalHours(path.Nodes)
		path.UpdatedAt = time.Now().UTC()
		doc.Paths[i] = path

		// Replacing the node list can strand course units bound to the
		// dropped nodes; cascade them like a path delete does.
		removedUnits := []string{}
		if patch.Nodes != nil {
			keptUnits := doc.CourseUnits[:0]
			for _, u := range doc.CourseUnits {
				if ni, _ := doc.NodeByID(u.NodeID); ni < 0 {
					removedUnits = append(removedUnits, u.ID)
					continue
				}
				keptUnits = append(keptUnits, u)
			}
			doc.CourseUnits = keptUnits
		}

		data := map[string]any{
			"pathId":        path.ID,
			"changedFields": changed,
		}
		if len(removedUnits) > 0 {
			data["removedUnitIds"] = removedUnits
		}
		doc.AppendEvent(newEvent(domain.EventPathUpdated, data))
		updated = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the path and every course unit bound to its nodes.
func (r *pathRepo) Delete(ctx context.Context, profileID, id string) (bool, error) {
	existing, err := r.GetByID(ctx, profileID, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	_, err = r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.PathByID(id)
		if i < 0 {
			return nil
		}
		removedNodes := map[string]bool{}
		for _, n := range doc.Paths[i].Nodes {
			removedNodes[n.ID] = true
		}
		doc.Paths = append(doc.Paths[:i], doc.Paths[i+1:]...)

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

		doc.AppendEvent(newEvent(domain.EventPathDeleted, map[string]any{
			"pathId":         id,
			"removedUnitIds": removedUnits,
		}))
		return nil
	})
	if err != nil {
		return false, err
	}
	r.log.Info("Path deleted", "profile_id", profileID, "path_id", id)
	return true, nil
}

func (r *pathRepo) UpdateNodeStatus(ctx context.Context, profileID, pathID, nodeID string, status domain.NodeStatus) (*domain.Path, error) {
	if !domain.IsValidNodeStatus(status) {
		res := domain.NewValidationResult()
		res.AddError("status", "invalid_enum", fmt.Sprintf("node status %q is not recognized", status))
		return nil, res.Err("node")
	}

	var updated domain.Path
	_, err := r.store.Update(ctx, profileID, func(doc *domain.Document) error {
		i := doc.PathByID(pathID)
		if i < 0 {
			return &pkgerrors.NotFoundError{Kind: "path", ID: pathID}
		}
		path := doc.Paths[i]
		ni := -1
		for j := range path.Nodes {
			if path.Nodes[j].ID == nodeID {
				ni = j
				break
			}
		}
		if ni < 0 {
			return &pkgerrors.NotFoundError{Kind: "node", ID: nodeID}
		}

		prev := path.Nodes[ni].Status
		path.Nodes[ni].Status = status
		if status == domain.NodeStatusCompleted {
			now := time.Now().UTC()
			path.Nodes[ni].CompletedAt = &now
		} else {
			path.Nodes[ni].CompletedAt = nil
		}
		path.UpdatedAt = time.Now().UTC()
		doc.Paths[i] = path
		doc.AppendEvent(newEvent(domain.EventNodeStatusChanged, map[string]any{
			"pathId": pathID,
			"nodeId": nodeID,
			"from":   string(prev),
			"to":     string(status),
		}))
		updated = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// validatePath checks intra-path referential integrity plus the goal
// foreign key against the loaded document.
func validatePath(doc *domain.Document, path domain.Path) *domain.ValidationResult {
	res := domain.NewValidationResult()

	if strings.TrimSpace(path.Title) == "" {
		res.AddError("title", "required", "title is required")
	} else if len(path.Title) > 200 {
		res.AddError("title", "too_long", "title must be 200 characters or fewer")
	}

	if path.GoalID == "" {
		res.AddError("goalId", "required", "goalId is required")
	} else if doc.GoalByID(path.GoalID) < 0 {
		res.AddError("goalId", "invalid_reference", fmt.Sprintf("goal %q does not exist", path.GoalID))
	}

	nodeIDs := map[string]bool{}
	for idx, n := range path.Nodes {
		field := fmt.Sprintf("nodes[%d]", idx)
		if n.ID == "" {
			res.AddError(field+".id", "required", "node id is required")
			continue
		}
		if nodeIDs[n.ID] {
			res.AddError(field+".id", "duplicate", fmt.Sprintf("node id %q appears more than once", n.ID))
		}
		nodeIDs[n.ID] = true
		if strings.TrimSpace(n.Title) == "" {
			res.AddError(field+".title", "required", "node title is required")
		}
		if !domain.IsValidNodeType(n.Type) {
			res.AddError(field+".type", "invalid_enum", fmt.Sprintf("node type %q is not recognized", n.Type))
		}
		if !domain.IsValidNodeStatus(n.Status) {
			res.AddError(field+".status", "invalid_enum", fmt.Sprintf("node status %q is not recognized", n.Status))
		}
		if n.EstimatedMinutes < 0 {
			res.AddError(field+".estimatedMinutes", "out_of_range", "estimated minutes cannot be negative")
		}
	}

	for idx, dep := range path.Dependencies {
		field := fmt.Sprintf("dependencies[%d]", idx)
		if !nodeIDs[dep.From] {
			res.AddError(field+".from", "invalid_reference", fmt.Sprintf("node %q does not exist in this path", dep.From))
		}
		if !nodeIDs[dep.To] {
			res.AddError(field+".to", "invalid_reference", fmt.Sprintf("node %q does not exist in this path", dep.To))
		}
	}

	for idx, m := range path.Milestones {
		field := fmt.Sprintf("milestones[%d]", idx)
		for _, nid := range m.NodeIDs {
			if !nodeIDs[nid] {
				res.AddError(field+".nodeIds", "invalid_reference", fmt.Sprintf("node %q does not exist in this path", nid))
			}
		}
	}

	return res
}

func applyPathPatch(path *domain.Path, patch domain.PathPatch) []string {
	changed := []string{}
	if patch.Title != nil && *patch.Title != path.Title {
		path.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Description != nil && *patch.Description != path.Description {
		path.Description = *patch.Description
		changed = append(changed, "description")
	}
	if patch.Nodes != nil {
		path.Nodes = normalizeNodes(patch.Nodes)
		changed = append(changed, "nodes")
	}
	if patch.Dependencies != nil {
		path.Dependencies = patch.Dependencies
		changed = append(changed, "dependencies")
	}
	if patch.Milestones != nil {
		path.Milestones = patch.Milestones
		changed = append(changed, "milestones")
	}
	if patch.Status != nil && *patch.Status != path.Status {
		path.Status = *patch.Status
		changed = append(changed, "status")
	}
	if patch.Version != nil && *patch.Version != path.Version {
		path.Version = *patch.Version
		changed = append(changed, "version")
	}
	return changed
}

// normalizeNodes assigns ids and default statuses to seeded nodes.
func normalizeNodes(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.Status == "" {
			n.Status = domain.NodeStatusNotStarted
		}
		if n.Skills == nil {
			n.Skills = []string{}
		}
		out = append(out, n)
	}
	return out
}
