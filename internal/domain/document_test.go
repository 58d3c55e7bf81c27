package domain

import (
	"fmt"
	"testing"
	"time"
)

func TestAppendEventTrimsOldestFirst(t *testing.T) {
	doc := NewDocument(time.Now().UTC())
	for i := 0; i < EventLogCap+5; i++ {
		doc.AppendEvent(Event{
			ID:   fmt.Sprintf("ev-%d", i),
			Type: EventGoalUpdated,
		})
	}

	if len(doc.Events) != EventLogCap {
		t.Fatalf("len(Events)=%d, want %d", len(doc.Events), EventLogCap)
	}
	if got := doc.Events[0].ID; got != "ev-5" {
		t.Fatalf("oldest surviving event=%q, want %q", got, "ev-5")
	}
	if got := doc.Events[len(doc.Events)-1].ID; got != fmt.Sprintf("ev-%d", EventLogCap+4) {
		t.Fatalf("newest event=%q, want %q", got, fmt.Sprintf("ev-%d", EventLogCap+4))
	}
}

func TestAppendAgentActionTrims(t *testing.T) {
	doc := NewDocument(time.Now().UTC())
	for i := 0; i < AgentActionLogCap+3; i++ {
		doc.AppendAgentAction(AgentAction{ID: fmt.Sprintf("act-%d", i)})
	}
	if len(doc.AgentActions) != AgentActionLogCap {
		t.Fatalf("len(AgentActions)=%d, want %d", len(doc.AgentActions), AgentActionLogCap)
	}
	if got := doc.AgentActions[0].ID; got != "act-3" {
		t.Fatalf("oldest surviving action=%q, want %q", got, "act-3")
	}
}

func TestNodeByIDResolvesOwningPath(t *testing.T) {
	doc := NewDocument(time.Now().UTC())
	doc.Paths = []Path{
		{ID: "p1", Nodes: []Node{{ID: "n1"}, {ID: "n2"}}},
		{ID: "p2", Nodes: []Node{{ID: "n3"}}},
	}

	ni, pi := doc.NodeByID("n3")
	if ni != 0 || pi != 1 {
		t.Fatalf("NodeByID(n3)=(%d,%d), want (0,1)", ni, pi)
	}
	ni, pi = doc.NodeByID("missing")
	if ni != -1 || pi != -1 {
		t.Fatalf("NodeByID(missing)=(%d,%d), want (-1,-1)", ni, pi)
	}
}

func TestActiveGoalCount(t *testing.T) {
	doc := NewDocument(time.Now().UTC())
	doc.Goals = []Goal{
		{ID: "g1", Status: GoalStatusActive},
		{ID: "g2", Status: GoalStatusPaused},
		{ID: "g3", Status: GoalStatusActive},
		{ID: "g4", Status: GoalStatusCompleted},
	}
	if got := doc.ActiveGoalCount(); got != 2 {
		t.Fatalf("ActiveGoalCount()=%d, want 2", got)
	}
}
