// Package task contains the pure business logic for the task lifecycle.
// Functions here evaluate transitions and creation rules without side
// effects; persistence is handled by the repository adapters.
package task

import "fmt"

// Task status constants
const (
	StatusBacklog    = "backlog"
	StatusReady      = "ready"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
)

// Task type constants
const (
	TypeTask  = "task"
	TypeBug   = "bug"
	TypeSpike = "spike"
	TypeEpic  = "epic"
)

// Suggested model constants
const (
	ModelHaiku  = "haiku"
	ModelSonnet = "sonnet"
	ModelOpus   = "opus"
)

// ValidStatuses lists the five lifecycle states in lifecycle order.
var ValidStatuses = []string{StatusBacklog, StatusReady, StatusInProgress, StatusBlocked, StatusDone}

// ValidTypes lists the accepted task types.
var ValidTypes = []string{TypeTask, TypeBug, TypeSpike, TypeEpic}

// ValidModels lists the accepted suggested models.
var ValidModels = []string{ModelHaiku, ModelSonnet, ModelOpus}

// GuardResult represents the outcome of a validation rule.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

func allowed() GuardResult {
	return GuardResult{Allowed: true}
}

func denied(format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// ValidStatus evaluates whether a caller-supplied status name is one of the
// five lifecycle states. The caller-requested target is accepted verbatim
// when valid; the engine trusts the caller's judgment about readiness.
func ValidStatus(status string) GuardResult {
	for _, s := range ValidStatuses {
		if status == s {
			return allowed()
		}
	}
	return denied("invalid status %q (valid: backlog, ready, in_progress, blocked, done)", status)
}

// ValidType evaluates whether a task type is accepted.
func ValidType(taskType string) GuardResult {
	for _, t := range ValidTypes {
		if taskType == t {
			return allowed()
		}
	}
	return denied("invalid task type %q (valid: task, bug, spike, epic)", taskType)
}

// ValidModel evaluates whether a suggested model is accepted. An empty
// value is allowed (the field is optional).
func ValidModel(model string) GuardResult {
	if model == "" {
		return allowed()
	}
	for _, m := range ValidModels {
		if model == m {
			return allowed()
		}
	}
	return denied("invalid suggested model %q (valid: haiku, sonnet, opus)", model)
}

// ValidPriority evaluates a priority value (1=critical .. 4=low).
func ValidPriority(priority int) GuardResult {
	if priority < 1 || priority > 4 {
		return denied("invalid priority %d (valid: 1-4)", priority)
	}
	return allowed()
}

// InitialStatus decides a task's status at birth. A task with no
// dependencies, or whose dependencies are all done, starts ready;
// otherwise it starts in the backlog.
func InitialStatus(depStatuses []string) string {
	for _, s := range depStatuses {
		if s != StatusDone {
			return StatusBacklog
		}
	}
	return StatusReady
}

// KeepsBlockerFields reports whether blocker_reason/blocker_needs survive a
// transition to the given status. They are present only while blocked and
// cleared on any transition away from blocked.
func KeepsBlockerFields(status string) bool {
	return status == StatusBlocked
}
