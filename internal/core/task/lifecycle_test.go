package task

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		if result := ValidStatus(s); !result.Allowed {
			t.Errorf("expected %q to be a valid status: %s", s, result.Reason)
		}
	}

	invalid := []string{"", "Done", "DONE", "paused", "complete", "open"}
	for _, s := range invalid {
		result := ValidStatus(s)
		if result.Allowed {
			t.Errorf("expected %q to be rejected", s)
		}
		if result.Error() == nil {
			t.Errorf("expected non-nil error for %q", s)
		}
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range ValidTypes {
		if result := ValidType(typ); !result.Allowed {
			t.Errorf("expected %q to be a valid type: %s", typ, result.Reason)
		}
	}

	for _, typ := range []string{"", "TASK", "feature", "chore"} {
		if result := ValidType(typ); result.Allowed {
			t.Errorf("expected %q to be rejected", typ)
		}
	}
}

func TestValidModel(t *testing.T) {
	// Empty is allowed - the field is optional
	if result := ValidModel(""); !result.Allowed {
		t.Errorf("expected empty model to be allowed: %s", result.Reason)
	}

	for _, m := range ValidModels {
		if result := ValidModel(m); !result.Allowed {
			t.Errorf("expected %q to be a valid model: %s", m, result.Reason)
		}
	}

	if result := ValidModel("gpt-4"); result.Allowed {
		t.Error("expected unknown model to be rejected")
	}
}

func TestValidPriority(t *testing.T) {
	for p := 1; p <= 4; p++ {
		if result := ValidPriority(p); !result.Allowed {
			t.Errorf("expected priority %d to be valid: %s", p, result.Reason)
		}
	}
	for _, p := range []int{0, 5, -1, 100} {
		if result := ValidPriority(p); result.Allowed {
			t.Errorf("expected priority %d to be rejected", p)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name        string
		depStatuses []string
		want        string
	}{
		{"no dependencies", nil, StatusReady},
		{"all dependencies done", []string{StatusDone, StatusDone}, StatusReady},
		{"one dependency pending", []string{StatusDone, StatusReady}, StatusBacklog},
		{"dependency in progress", []string{StatusInProgress}, StatusBacklog},
		{"dependency blocked", []string{StatusBlocked}, StatusBacklog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialStatus(tt.depStatuses); got != tt.want {
				t.Errorf("InitialStatus(%v) = %q, want %q", tt.depStatuses, got, tt.want)
			}
		})
	}
}

func TestKeepsBlockerFields(t *testing.T) {
	if !KeepsBlockerFields(StatusBlocked) {
		t.Error("expected blocker fields to persist while blocked")
	}
	for _, s := range []string{StatusBacklog, StatusReady, StatusInProgress, StatusDone} {
		if KeepsBlockerFields(s) {
			t.Errorf("expected blocker fields to be cleared on transition to %q", s)
		}
	}
}
