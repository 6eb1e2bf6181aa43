package task

// Dependent is a candidate row for cascade promotion: a task in the backlog
// that names the just-completed task among its dependencies.
type Dependent struct {
	TaskID    string
	Status    string
	DependsOn []string
}

// ResolveCascade computes which dependents become ready once completedID is
// done. statusByID must carry the current status of every dependency
// referenced by the candidates (missing entries count as not done, which
// also covers dangling references to deleted tasks).
//
// The pass covers direct dependents only. A chain of dependents propagates
// one hop per completion call: each completion is a discrete event.
// Promotion is idempotent, so re-running the cascade for an already-done
// task is safe.
func ResolveCascade(completedID string, candidates []Dependent, statusByID map[string]string) []string {
	var unblocked []string
	for _, c := range candidates {
		if c.Status != StatusBacklog {
			continue
		}
		if !dependsOn(c, completedID) {
			continue
		}
		satisfied := true
		for _, dep := range c.DependsOn {
			if dep == completedID {
				continue
			}
			if statusByID[dep] != StatusDone {
				satisfied = false
				break
			}
		}
		if satisfied {
			unblocked = append(unblocked, c.TaskID)
		}
	}
	return unblocked
}

func dependsOn(d Dependent, id string) bool {
	for _, dep := range d.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}
