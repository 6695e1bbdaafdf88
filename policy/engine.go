package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/mentorlane/api/internal/metrics"
)

// Decisions returned by the access policy.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Actions checked against the access policy.
const (
	ActionJournalRead  = "journal.read"
	ActionJournalWrite = "journal.write"
	ActionTaskRead     = "task.read"
	ActionTaskModify   = "task.modify"
	ActionTaskSubmit   = "task.submit"
)

// Subject is the caller an access decision is made for.
type Subject struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Resource carries the ownership fields of the record being accessed.
type Resource struct {
	MentorID  string `json:"mentor_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	MenteeID  string `json:"mentee_id,omitempty"`
}

// Input is the document the policy is evaluated against.
type Input struct {
	Action   string   `json:"action"`
	Subject  Subject  `json:"subject"`
	Resource Resource `json:"resource"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("decision = data.access.decision; reason = data.access.reason"),
		rego.Module("access.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the access policy.
// Returns: decision (allow, deny), reason, error
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 {
		return DecisionDeny, "no decision", nil
	}

	decision, _ := results[0].Bindings["decision"].(string)
	reason, _ := results[0].Bindings["reason"].(string)
	if decision == "" {
		return DecisionDeny, "unexpected return type", nil
	}
	return decision, reason, nil
}

// Allow evaluates input and reports whether the action is permitted.
func (e *Engine) Allow(ctx context.Context, input Input) (bool, string, error) {
	decision, reason, err := e.Evaluate(ctx, input)
	if err != nil {
		return false, "", err
	}
	metrics.PolicyDecisions.WithLabelValues(input.Action, decision).Inc()
	return decision == DecisionAllow, reason, nil
}

// DefaultPolicy is the default policy content.
const DefaultPolicy = `
package access

default decision = "deny"

default reason = "no matching rule"

session_party {
	input.subject.id == input.resource.mentor_id
}

session_party {
	input.subject.id == input.resource.student_id
}

task_party {
	input.subject.id == input.resource.mentor_id
}

task_party {
	input.subject.id == input.resource.mentee_id
}

decision = "allow" {
	input.action == "journal.read"
	session_party
}

decision = "allow" {
	input.action == "journal.write"
	session_party
}

decision = "allow" {
	input.action == "task.read"
	task_party
}

# Only the assigning mentor edits, deletes or reviews a task.
decision = "allow" {
	input.action == "task.modify"
	input.subject.id == input.resource.mentor_id
}

decision = "allow" {
	input.action == "task.submit"
	input.subject.id == input.resource.mentee_id
}

reason = "allowed" {
	decision == "allow"
}

reason = "not a party to this session" {
	startswith(input.action, "journal.")
	not session_party
}

reason = "not a party to this task" {
	input.action == "task.read"
	not task_party
}

reason = "only the assigning mentor may change this task" {
	input.action == "task.modify"
	input.subject.id != input.resource.mentor_id
}

reason = "only the assigned mentee may submit this task" {
	input.action == "task.submit"
	input.subject.id != input.resource.mentee_id
}
`
