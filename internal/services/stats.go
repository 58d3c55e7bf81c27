package services

import (
	"context"
	"math"

	"github.com/lumilearn/lumilearn-backend/internal/domain"
	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
	"github.com/lumilearn/lumilearn-backend/internal/store"
)

// StatsService computes derived views on demand from the latest
// document. Nothing here is cached or persisted.
type StatsService interface {
	GoalStats(ctx context.Context, profileID string) (*domain.GoalStats, error)
	PathStats(ctx context.Context, profileID string) (*domain.PathStats, error)
	SystemStatus(ctx context.Context, profileID string) (*domain.SystemStatus, error)
}

type statsService struct {
	store *store.CoreStore
	log   *logger.Logger
}

func NewStatsService(coreStore *store.CoreStore, baseLog *logger.Logger) StatsService {
	serviceLog := baseLog.With("service", "StatsService")
	return &statsService{store: coreStore, log: serviceLog}
}

func (s *statsService) GoalStats(ctx context.Context, profileID string) (*domain.GoalStats, error) {
	doc, err := s.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	stats := &domain.GoalStats{
		Total:      len(doc.Goals),
		ByStatus:   map[domain.GoalStatus]int{},
		ByCategory: map[domain.GoalCategory]int{},
	}
	totalWeeks := 0.0
	for _, g := range doc.Goals {
		stats.ByStatus[g.Status]++
		stats.ByCategory[g.Category]++
		if g.Status == domain.GoalStatusCompleted && g.UpdatedAt.After(g.CreatedAt) {
			weeks := g.UpdatedAt.Sub(g.CreatedAt).Hours() / (24 * 7)
			totalWeeks += weeks
			stats.CompletedWithDuration++
		}
	}
	if stats.CompletedWithDuration > 0 {
		stats.AvgCompletionWeeks = int(math.Round(totalWeeks / float64(stats.CompletedWithDuration)))
	}
	return stats, nil
}

func (s *statsService) PathStats(ctx context.Context, profileID string) (*domain.PathStats, error) {
	doc, err := s.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	stats := &domain.PathStats{
		Total:    len(doc.Paths),
		ByStatus: map[domain.PathStatus]int{},
	}
	for _, p := range doc.Paths {
		stats.ByStatus[p.Status]++
		stats.TotalEstimatedHrs += p.TotalEstimatedHours
		if p.Status != domain.PathStatusActive {
			continue
		}
		stats.ActivePathCount++
		for _, n := range p.Nodes {
			stats.NodesTotal++
			switch n.Status {
			case domain.NodeStatusCompleted:
				stats.NodesCompleted++
			case domain.NodeStatusInProgress:
				stats.NodesInProgress++
			}
		}
	}
	if stats.NodesTotal > 0 {
		stats.NodeCompletionPct = math.Round(float64(stats.NodesCompleted)/float64(stats.NodesTotal)*10000) / 100
	}
	return stats, nil
}

func (s *statsService) SystemStatus(ctx context.Context, profileID string) (*domain.SystemStatus, error) {
	doc, err := s.store.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	hasProfile, err := s.store.HasAbilityProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	activeGoals := doc.ActiveGoalCount()
	activePaths := 0
	inProgressNodes := 0
	nodesTotal := 0
	nodesCompleted := 0
	for _, p := range doc.Paths {
		if p.Status != domain.PathStatusActive {
			continue
		}
		activePaths++
		for _, n := range p.Nodes {
			nodesTotal++
			switch n.Status {
			case domain.NodeStatusInProgress:
				inProgressNodes++
			case domain.NodeStatusCompleted:
				nodesCompleted++
			}
		}
	}

	status := &domain.SystemStatus{
		Phase:             classifyPhase(hasProfile, activeGoals, activePaths, inProgressNodes),
		ActiveGoals:       activeGoals,
		ActivePaths:       activePaths,
		HasAbilityProfile: hasProfile,
		StorageOK:         true,
		Recommendations:   []string{},
	}
	if nodesTotal > 0 {
		status.CompletionProgress = math.Round(float64(nodesCompleted)/float64(nodesTotal)*10000) / 100
	}
	status.Recommendations = recommend(status)
	return status, nil
}

// classifyPhase walks the checks in their required order; the first
// absence wins.
func classifyPhase(hasProfile bool, activeGoals, activePaths, inProgressNodes int) domain.LearningPhase {
	switch {
	case !hasProfile:
		return domain.PhaseAssessment
	case activeGoals == 0:
		return domain.PhaseGoalSetting
	case activePaths == 0:
		return domain.PhasePathPlanning
	case inProgressNodes > 0:
		return domain.PhaseLearning
	default:
		return domain.PhaseReview
	}
}

func recommend(status *domain.SystemStatus) []string {
	recs := []string{}
	switch status.Phase {
	case domain.PhaseAssessment:
		recs = append(recs, "complete the ability assessment to calibrate your level")
	case domain.PhaseGoalSetting:
		recs = append(recs, "create and activate a learning goal")
	case domain.PhasePathPlanning:
		recs = append(recs, "generate and activate a path for an active goal")
	case domain.PhaseLearning:
		recs = append(recs, "keep going: finish the nodes currently in progress")
	case domain.PhaseReview:
		recs = append(recs, "review completed work or start the next node")
	}
	if status.ActiveGoals >= domain.ActiveGoalLimit {
		recs = append(recs, "goal limit reached; complete or pause a goal before starting another")
	}
	return recs
}
