package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(context.Background(), DefaultPolicy)
	require.NoError(t, err)
	return e
}

func TestEngineDecisions(t *testing.T) {
	e := newTestEngine(t)
	session := Resource{MentorID: "m", StudentID: "s"}
	task := Resource{MentorID: "m", MenteeID: "s"}

	tests := []struct {
		name     string
		input    Input
		decision string
		reason   string
	}{
		{"mentor reads journal", Input{ActionJournalRead, Subject{ID: "m"}, session}, DecisionAllow, "allowed"},
		{"student writes journal", Input{ActionJournalWrite, Subject{ID: "s"}, session}, DecisionAllow, "allowed"},
		{"outsider reads journal", Input{ActionJournalRead, Subject{ID: "x"}, session}, DecisionDeny, "not a party to this session"},
		{"mentee reads task", Input{ActionTaskRead, Subject{ID: "s"}, task}, DecisionAllow, "allowed"},
		{"outsider reads task", Input{ActionTaskRead, Subject{ID: "x"}, task}, DecisionDeny, "not a party to this task"},
		{"mentor modifies task", Input{ActionTaskModify, Subject{ID: "m"}, task}, DecisionAllow, "allowed"},
		{"mentee modifies task", Input{ActionTaskModify, Subject{ID: "s"}, task}, DecisionDeny, "only the assigning mentor may change this task"},
		{"mentee submits task", Input{ActionTaskSubmit, Subject{ID: "s"}, task}, DecisionAllow, "allowed"},
		{"mentor submits task", Input{ActionTaskSubmit, Subject{ID: "m"}, task}, DecisionDeny, "only the assigned mentee may submit this task"},
		{"unknown action", Input{"billing.refund", Subject{ID: "m"}, task}, DecisionDeny, "no matching rule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, reason, err := e.Evaluate(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.decision, decision)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestEngineEmptySubjectNeverMatchesEmptyOwner(t *testing.T) {
	e := newTestEngine(t)

	// A task without a mentee must not be submittable by an anonymous caller.
	allowed, _, err := e.Allow(context.Background(), Input{
		Action:   ActionTaskSubmit,
		Subject:  Subject{ID: ""},
		Resource: Resource{MentorID: "m"},
	})
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestNewEngineRejectsInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package access\n\ndecision = {")
	assert.Error(t, err)
}
