package domain

import (
	"context"
	"time"
)

// TaskKind tags the two predicate shapes a task definition can carry.
type TaskKind int

const (
	// TaskKindProfile validates synchronously against the fetched profile.
	TaskKindProfile TaskKind = iota
	// TaskKindActivity validates against the user's historical activity and
	// needs a store query.
	TaskKindActivity
)

// TaskDefinition is one entry of the static credit-task registry. Exactly one
// of CheckProfile / CheckActivity is set, according to Kind.
type TaskDefinition struct {
	ID            string
	Credits       int
	Kind          TaskKind
	CheckProfile  func(p *Profile) bool
	CheckActivity func(ctx context.Context, userID string) (bool, error)
}

// CompletedTask records that a task's credits were awarded to a user.
// At most one record per (user, task) pair; the uniqueness is enforced by a
// pre-check in the claim flow, not by a store constraint.
type CompletedTask struct {
	UserID      string    `json:"user_id"`
	TaskID      string    `json:"task_id"`
	CompletedAt time.Time `json:"completed_at"`
}
