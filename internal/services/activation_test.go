package services

import (
	"context"
	"strings"
	"testing"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/repos"
	"github.com/lumilearn/lumilearn-backend/internal/storage"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

const testProfile = "test-profile"

type serviceEnv struct {
	adapter    *storage.MemoryAdapter
	store      *store.CoreStore
	goals      repos.GoalRepo
	paths      repos.PathRepo
	activation ActivationService
	stats      StatsService
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New failed: %v", err)
	}
	adapter := storage.NewMemoryAdapter()
	coreStore := store.NewCoreStore(adapter, log)
	goalRepo := repos.NewGoalRepo(coreStore, log)
	pathRepo := repos.NewPathRepo(coreStore, log)
	return &serviceEnv{
		adapter:    adapter,
		store:      coreStore,
		goals:      goalRepo,
		paths:      pathRepo,
		activation: NewActivationService(coreStore, goalRepo, pathRepo, log),
		stats:      NewStatsService(coreStore, log),
	}
}

func (e *serviceEnv) mustCreateGoal(t *testing.T, title string) *domain.Goal {
	t.Helper()
	goal, err := e.goals.Create(context.Background(), testProfile, domain.CreateGoalInput{
		Title:              title,
		Description:        "test goal",
		Category:           domain.CategoryBackend,
		Priority:           3,
		TargetLevel:        domain.TargetLevelIntermediate,
		EstimatedTimeWeeks: 8,
	})
	if err != nil {
		t.Fatalf("create goal %q: %v", title, err)
	}
	return goal
}

func (e *serviceEnv) mustCreatePath(t *testing.T, goalID, title string, nodes []domain.Node) *domain.Path {
	t.Helper()
	path, err := e.paths.Create(context.Background(), testProfile, domain.CreatePathInput{
		GoalID: goalID,
		Title:  title,
		Nodes:  nodes,
	})
	if err != nil {
		t.Fatalf("create path %q: %v", title, err)
	}
	return path
}

func (e *serviceEnv) eventTypes(t *testing.T) []string {
	t.Helper()
	doc, err := e.store.Load(context.Background(), testProfile)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	types := make([]string, 0, len(doc.Events))
	for _, ev := range doc.Events {
		types = append(types, ev.Type)
	}
	return types
}

func TestActivateGoal(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()
	goal := env.mustCreateGoal(t, "Learn Go")

	result, err := env.activation.ActivateGoal(ctx, testProfile, goal.ID)
	if err != nil {
		t.Fatalf("ActivateGoal failed: %v", err)
	}
	if !result.Success || result.GoalID != goal.ID {
		t.Fatalf("result=%+v, want success for %s", result, goal.ID)
	}

	stored, err := env.goals.GetByID(ctx, testProfile, goal.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Status != domain.GoalStatusActive {
		t.Fatalf("status=%q after activation, want active", stored.Status)
	}

	types := env.eventTypes(t)
	if types[len(types)-1] != domain.EventGoalActivated {
		t.Fatalf("last event=%q, want %q", types[len(types)-1], domain.EventGoalActivated)
	}
}

func TestActivateGoalLimitIsBusinessFailure(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		g := env.mustCreateGoal(t, title)
		if result, err := env.activation.ActivateGoal(ctx, testProfile, g.ID); err != nil || !result.Success {
			t.Fatalf("activation of %q: result=%+v err=%v", title, result, err)
		}
	}

	d := env.mustCreateGoal(t, "D")
	result, err := env.activation.ActivateGoal(ctx, testProfile, d.ID)
	if err != nil {
		t.Fatalf("limit breach surfaced as error: %v", err)
	}
	if result.Success {
		t.Fatalf("fourth activation reported success")
	}
	if !strings.Contains(result.Message, "pause or complete an existing goal first") {
		t.Fatalf("message %q missing remediation hint", result.Message)
	}

	stored, _ := env.goals.GetByID(ctx, testProfile, d.ID)
	if stored.Status != domain.GoalStatusPaused {
		t.Fatalf("rejected goal status=%q, want paused", stored.Status)
	}
}

func TestActivateGoalAlreadyActiveAtLimit(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	var first *domain.Goal
	for _, title := range []string{"A", "B", "C"} {
		g := env.mustCreateGoal(t, title)
		if first == nil {
			first = g
		}
		if result, err := env.activation.ActivateGoal(ctx, testProfile, g.ID); err != nil || !result.Success {
			t.Fatalf("activation of %q: result=%+v err=%v", title, result, err)
		}
	}

	// Re-activating a goal that already holds one of the three slots
	// is a no-op, not a limit breach.
	result, err := env.activation.ActivateGoal(ctx, testProfile, first.ID)
	if err != nil {
		t.Fatalf("repeat activation failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("repeat activation at the ceiling rejected: %+v", result)
	}

	stored, _ := env.goals.GetByID(ctx, testProfile, first.ID)
	if stored.Status != domain.GoalStatusActive {
		t.Fatalf("status=%q after repeat activation, want active", stored.Status)
	}
}

func TestActivateGoalNotFoundIsBusinessFailure(t *testing.T) {
	env := newServiceEnv(t)
	result, err := env.activation.ActivateGoal(context.Background(), testProfile, "ghost")
	if err != nil {
		t.Fatalf("missing goal surfaced as error: %v", err)
	}
	if result.Success {
		t.Fatalf("activation of missing goal reported success")
	}
}

func TestGoalTransitions(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		op   func(context.Context, string, string) (*ActivationResult, error)
		want domain.GoalStatus
	}{
		{name: "pause", op: env.activation.PauseGoal, want: domain.GoalStatusPaused},
		{name: "complete", op: env.activation.CompleteGoal, want: domain.GoalStatusCompleted},
		{name: "cancel", op: env.activation.CancelGoal, want: domain.GoalStatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			goal := env.mustCreateGoal(t, "Goal "+tc.name)
			result, err := tc.op(ctx, testProfile, goal.ID)
			if err != nil || !result.Success {
				t.Fatalf("result=%+v err=%v", result, err)
			}
			stored, _ := env.goals.GetByID(ctx, testProfile, goal.ID)
			if stored.Status != tc.want {
				t.Fatalf("status=%q, want %q", stored.Status, tc.want)
			}
		})
	}
}

func TestActivatePathFreezesActiveSibling(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()
	goal := env.mustCreateGoal(t, "Learn Go")

	p1 := env.mustCreatePath(t, goal.ID, "Path one", nil)
	p2 := env.mustCreatePath(t, goal.ID, "Path two", nil)

	if result, err := env.activation.ActivatePath(ctx, testProfile, p1.ID); err != nil || !result.Success {
		t.Fatalf("first activation: result=%+v err=%v", result, err)
	}

	result, err := env.activation.ActivatePath(ctx, testProfile, p2.ID)
	if err != nil {
		t.Fatalf("second activation failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("second activation rejected: %+v", result)
	}
	if len(result.FrozenPathIDs) != 1 || result.FrozenPathIDs[0] != p1.ID {
		t.Fatalf("frozenPathIds=%v, want [%s]", result.FrozenPathIDs, p1.ID)
	}

	frozen, _ := env.paths.GetByID(ctx, testProfile, p1.ID)
	if frozen.Status != domain.PathStatusFrozen {
		t.Fatalf("displaced path status=%q, want frozen", frozen.Status)
	}
	active, _ := env.paths.GetByID(ctx, testProfile, p2.ID)
	if active.Status != domain.PathStatusActive {
		t.Fatalf("target path status=%q, want active", active.Status)
	}

	types := env.eventTypes(t)
	sawFrozen := false
	for _, ty := range types {
		if ty == domain.EventPathFrozen {
			sawFrozen = true
		}
	}
	if !sawFrozen {
		t.Fatalf("no path_frozen event in %v", types)
	}
	if types[len(types)-1] != domain.EventPathActivated {
		t.Fatalf("last event=%q, want %q", types[len(types)-1], domain.EventPathActivated)
	}
}

func TestActivatePathLeavesOtherGoalsAlone(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()

	g1 := env.mustCreateGoal(t, "Goal one")
	g2 := env.mustCreateGoal(t, "Goal two")
	p1 := env.mustCreatePath(t, g1.ID, "G1 path", nil)
	p2 := env.mustCreatePath(t, g2.ID, "G2 path", nil)

	if result, err := env.activation.ActivatePath(ctx, testProfile, p1.ID); err != nil || !result.Success {
		t.Fatalf("first activation: result=%+v err=%v", result, err)
	}
	result, err := env.activation.ActivatePath(ctx, testProfile, p2.ID)
	if err != nil || !result.Success {
		t.Fatalf("cross-goal activation: result=%+v err=%v", result, err)
	}
	if len(result.FrozenPathIDs) != 0 {
		t.Fatalf("cross-goal activation froze %v", result.FrozenPathIDs)
	}

	still, _ := env.paths.GetByID(ctx, testProfile, p1.ID)
	if still.Status != domain.PathStatusActive {
		t.Fatalf("unrelated goal's path status=%q, want active", still.Status)
	}
}

func TestActivatePathAlreadyActive(t *testing.T) {
	env := newServiceEnv(t)
	ctx := context.Background()
	goal := env.mustCreateGoal(t, "Learn Go")
	p := env.mustCreatePath(t, goal.ID, "Path", nil)

	if result, err := env.activation.ActivatePath(ctx, testProfile, p.ID); err != nil || !result.Success {
		t.Fatalf("first activation: result=%+v err=%v", result, err)
	}
	result, err := env.activation.ActivatePath(ctx, testProfile, p.ID)
	if err != nil || !result.Success {
		t.Fatalf("repeat activation: result=%+v err=%v", result, err)
	}
}

func TestActivatePathNotFound(t *testing.T) {
	env := newServiceEnv(t)
	result, err := env.activation.ActivatePath(context.Background(), testProfile, "ghost")
	if err != nil {
		t.Fatalf("missing path surfaced as error: %v", err)
	}
	if result.Success {
		t.Fatalf("activation of missing path reported success")
	}
}
