package repos

import (
	"context"
	"testing"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/storage"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

const testProfile = "test-profile"

type testEnv struct {
	store *store.CoreStore
	goals GoalRepo
	paths PathRepo
	units CourseUnitRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New failed: %v", err)
	}
	coreStore := store.NewCoreStore(storage.NewMemoryAdapter(), log)
	return &testEnv{
		store: coreStore,
		goals: NewGoalRepo(coreStore, log),
		paths: NewPathRepo(coreStore, log),
		units: NewCourseUnitRepo(coreStore, log),
	}
}

func validGoalInput(title string) domain.CreateGoalInput {
	return domain.CreateGoalInput{
		Title:              title,
		Description:        "a test goal",
		Category:           domain.CategoryBackend,
		Priority:           3,
		TargetLevel:        domain.TargetLevelIntermediate,
		EstimatedTimeWeeks: 12,
		RequiredSkills:     []string{"go"},
		Outcomes:           []string{"ship a service"},
	}
}

func mustCreateGoal(t *testing.T, env *testEnv, title string) *domain.Goal {
	t.Helper()
	goal, err := env.goals.Create(context.Background(), testProfile, validGoalInput(title))
	if err != nil {
		t.Fatalf("create goal %q: %v", title, err)
	}
	return goal
}

func mustCreatePath(t *testing.T, env *testEnv, goalID, title string, nodes []domain.Node) *domain.Path {
	t.Helper()
	path, err := env.paths.Create(context.Background(), testProfile, domain.CreatePathInput{
		GoalID: goalID,
		Title:  title,
		Nodes:  nodes,
	})
	if err != nil {
		t.Fatalf("create path %q: %v", title, err)
	}
	return path
}

func mustActivateGoal(t *testing.T, env *testEnv, goalID string) {
	t.Helper()
	if _, err := env.goals.Activate(context.Background(), testProfile, goalID); err != nil {
		t.Fatalf("activate goal %q: %v", goalID, err)
	}
}

func lastEvent(t *testing.T, env *testEnv) domain.Event {
	t.Helper()
	doc, err := env.store.Load(context.Background(), testProfile)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if len(doc.Events) == 0 {
		t.Fatalf("event log is empty")
	}
	return doc.Events[len(doc.Events)-1]
}
