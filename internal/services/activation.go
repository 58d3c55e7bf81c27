package services

import (
	"context"
	"fmt"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	pkgerrors "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/repos"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

// ActivationResult is the uniform outcome handed to UI/API callers;
// business-rule rejections land here as Success=false with a
// renderable message instead of an error.
type ActivationResult struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	GoalID        string   `json:"goalId,omitempty"`
	PathID        string   `json:"pathId,omitempty"`
	FrozenPathIDs []string `json:"frozenPathIds,omitempty"`
}

// ActivationService enforces the cross-entity rules the repositories
// cannot see in isolation: the active-goal ceiling and path
// exclusivity per goal.
type ActivationService interface {
	ActivateGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error)
	PauseGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error)
	CompleteGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error)
	CancelGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error)
	ActivatePath(ctx context.Context, profileID, pathID string) (*ActivationResult, error)
}

type activationService struct {
	store    *store.CoreStore
	goalRepo repos.GoalRepo
	pathRepo repos.PathRepo
	log      *logger.Logger
}

func NewActivationService(coreStore *store.CoreStore, goalRepo repos.GoalRepo, pathRepo repos.PathRepo, baseLog *logger.Logger) ActivationService {
	serviceLog := baseLog.With("service", "ActivationService")
	return &activationService{
		store:    coreStore,
		goalRepo: goalRepo,
		pathRepo: pathRepo,
		log:      serviceLog,
	}
}

func (s *activationService) ActivateGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error) {
	active, err := s.goalRepo.GetByStatus(ctx, profileID, domain.GoalStatusActive)
	if err != nil {
		return nil, err
	}
	alreadyActive := false
	for _, g := range active {
		if g.ID == goalID {
			alreadyActive = true
			break
		}
	}
	if !alreadyActive && len(active) >= domain.ActiveGoalLimit {
		return &ActivationResult{
			Success: false,
			GoalID:  goalID,
			Message: fmt.Sprintf(
				"activation limit reached: %d goals are already active (limit %d); pause or complete an existing goal first",
				len(active),
				domain.ActiveGoalLimit,
			),
		}, nil
	}

	goal, err := s.goalRepo.Activate(ctx, profileID, goalID)
	if err != nil {
		if result, ok := businessFailure(err, goalID, ""); ok {
			return result, nil
		}
		return nil, err
	}

	if _, err := s.store.AppendEvent(ctx, profileID, domain.EventGoalActivated, map[string]any{
		"goalId": goal.ID,
		"title":  goal.Title,
	}); err != nil {
		return nil, err
	}
	s.log.Info("Goal activated", "profile_id", profileID, "goal_id", goalID)
	return &ActivationResult{
		Success: true,
		GoalID:  goal.ID,
		Message: fmt.Sprintf("goal %q is now active", goal.Title),
	}, nil
}

func (s *activationService) PauseGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error) {
	// Pausing never cascades to the goal's paths; they keep their own
	// status so a resumed goal picks up where it left off.
	return s.transitionGoal(ctx, profileID, goalID, "paused", s.goalRepo.Pause)
}

func (s *activationService) CompleteGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error) {
	return s.transitionGoal(ctx, profileID, goalID, "completed", s.goalRepo.Complete)
}

func (s *activationService) CancelGoal(ctx context.Context, profileID, goalID string) (*ActivationResult, error) {
	return s.transitionGoal(ctx, profileID, goalID, "cancelled", s.goalRepo.Cancel)
}

func (s *activationService) transitionGoal(
	ctx context.Context,
	profileID, goalID, verb string,
	op func(ctx context.Context, profileID, id string) (*domain.Goal, error),
) (*ActivationResult, error) {
	goal, err := op(ctx, profileID, goalID)
	if err != nil {
		if result, ok := businessFailure(err, goalID, ""); ok {
			return result, nil
		}
		return nil, err
	}
	return &ActivationResult{
		Success: true,
		GoalID:  goal.ID,
		Message: fmt.Sprintf("goal %q is now %s", goal.Title, verb),
	}, nil
}

// ActivatePath freezes every active sibling of the target's goal
// before activating the target. The de-activations are committed
// first, so a partial failure can never leave two active paths in the
// same goal.
func (s *activationService) ActivatePath(ctx context.Context, profileID, pathID string) (*ActivationResult, error) {
	target, err := s.pathRepo.GetByID(ctx, profileID, pathID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return &ActivationResult{
			Success: false,
			PathID:  pathID,
			Message: fmt.Sprintf("path %q not found", pathID),
		}, nil
	}
	if target.Status == domain.PathStatusActive {
		return &ActivationResult{
			Success: true,
			PathID:  pathID,
			Message: fmt.Sprintf("path %q is already active", target.Title),
		}, nil
	}

	siblings, err := s.pathRepo.GetAllByGoal(ctx, profileID, target.GoalID)
	if err != nil {
		return nil, err
	}

	frozen := []string{}
	frozenStatus := domain.PathStatusFrozen
	for _, sib := range siblings {
		if sib.ID == pathID || sib.Status != domain.PathStatusActive {
			continue
		}
		if _, err := s.pathRepo.Update(ctx, profileID, sib.ID, domain.PathPatch{Status: &frozenStatus}); err != nil {
			return nil, err
		}
		if _, err := s.store.AppendEvent(ctx, profileID, domain.EventPathFrozen, map[string]any{
			"pathId":         sib.ID,
			"goalId":         sib.GoalID,
			"displacedBy":    pathID,
			"previousStatus": string(domain.PathStatusActive),
		}); err != nil {
			return nil, err
		}
		frozen = append(frozen, sib.ID)
	}

	activeStatus := domain.PathStatusActive
	activated, err := s.pathRepo.Update(ctx, profileID, pathID, domain.PathPatch{Status: &activeStatus})
	if err != nil {
		if result, ok := businessFailure(err, "", pathID); ok {
			result.FrozenPathIDs = frozen
			return result, nil
		}
		return nil, err
	}

	if _, err := s.store.AppendEvent(ctx, profileID, domain.EventPathActivated, map[string]any{
		"pathId":        activated.ID,
		"goalId":        activated.GoalID,
		"frozenPathIds": frozen,
	}); err != nil {
		return nil, err
	}
	s.log.Info("Path activated", "profile_id", profileID, "path_id", pathID, "frozen_count", len(frozen))
	return &ActivationResult{
		Success:       true,
		PathID:        activated.ID,
		FrozenPathIDs: frozen,
		Message:       fmt.Sprintf("path %q is now active", activated.Title),
	}, nil
}

// businessFailure converts taxonomy errors that callers render as
// feedback into failed results; infrastructure errors pass through.
func businessFailure(err error, goalID, pathID string) (*ActivationResult, bool) {
	if pkgerrors.IsStorage(err) {
		return nil, false
	}
	if pkgerrors.IsNotFound(err) || pkgerrors.IsActivationLimit(err) || pkgerrors.IsValidation(err) {
		return &ActivationResult{
			Success: false,
			GoalID:  goalID,
			PathID:  pathID,
			Message: err.Error(),
		}, true
	}
	return nil, false
}
