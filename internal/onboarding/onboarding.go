// Package onboarding decides which first-run step a user still has to complete.
package onboarding

import "github.com/yukikurage/planner-api/internal/entitlement"

type State string

const (
	// Loading is reported while the profile cannot be read yet.
	Loading            State = "loading"
	NeedsWorkspace     State = "needs_workspace"
	NeedsPlanSelection State = "needs_plan_selection"
	Ready              State = "ready"
)

// Resolve is re-evaluated on every request; nothing is stored. A workspace
// must exist first, then a paid plan must be chosen.
func Resolve(workspaceCount int64, plan string) State {
	if workspaceCount == 0 {
		return NeedsWorkspace
	}
	p, ok := entitlement.ParsePlan(plan)
	if !ok || p == entitlement.PlanFree {
		return NeedsPlanSelection
	}
	return Ready
}
