// Package entitlement maps a subscription plan to the features and
// resource caps it unlocks.
package entitlement

import "strings"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// Plans lists the selectable tiers from cheapest to most expensive.
var Plans = []Plan{PlanFree, PlanStandard, PlanPremium}

// ParsePlan normalises a stored plan string. The second result is false for
// empty or unknown values.
func ParsePlan(s string) (Plan, bool) {
	switch p := Plan(strings.ToLower(strings.TrimSpace(s))); p {
	case PlanFree, PlanStandard, PlanPremium:
		return p, true
	}
	return PlanFree, false
}

type Feature string

const (
	FeatureCalendar             Feature = "calendar"
	FeatureTeams                Feature = "teams"
	FeaturePartners             Feature = "partners"
	FeatureNotifications        Feature = "notifications"
	FeatureCustomThemes         Feature = "custom_themes"
	FeatureDataExport           Feature = "data_export"
	FeatureCustomWorkspaceCount Feature = "custom_workspace_count"
	FeatureTeamCount            Feature = "team_count"
	FeatureTaskSuggestions      Feature = "task_suggestions"
)

// Features lists every gated feature.
var Features = []Feature{
	FeatureCalendar,
	FeatureTeams,
	FeaturePartners,
	FeatureNotifications,
	FeatureCustomThemes,
	FeatureDataExport,
	FeatureCustomWorkspaceCount,
	FeatureTeamCount,
	FeatureTaskSuggestions,
}

// Entitlements is the resolved capability set of one plan.
type Entitlements struct {
	Plan           Plan             `json:"plan"`
	Features       map[Feature]bool `json:"features"`
	WorkspaceLimit int              `json:"workspace_limit"`
	TeamLimit      int              `json:"team_limit"`
	CategoryLimit  int              `json:"category_limit"`
}

// Allows reports whether f is unlocked. Features missing from the table are denied.
func (e Entitlements) Allows(f Feature) bool {
	return e.Features[f]
}

type tier struct {
	features   []Feature
	workspaces int
	teams      int
	categories int
}

var tiers = map[Plan]tier{
	PlanFree: {
		workspaces: 3,
		teams:      0,
		categories: 8,
	},
	PlanStandard: {
		features: []Feature{
			FeatureCalendar,
			FeatureTeams,
			FeaturePartners,
			FeatureNotifications,
			FeatureTeamCount,
		},
		workspaces: 3,
		teams:      3,
		categories: 8,
	},
	PlanPremium: {
		features:   Features,
		workspaces: 5,
		teams:      3,
		categories: 8,
	},
}

// Resolve returns the entitlements of plan. Unknown and empty plans resolve
// to the free tier.
func Resolve(plan string) Entitlements {
	p, _ := ParsePlan(plan)
	t := tiers[p]

	features := make(map[Feature]bool, len(Features))
	for _, f := range Features {
		features[f] = false
	}
	for _, f := range t.features {
		features[f] = true
	}

	return Entitlements{
		Plan:           p,
		Features:       features,
		WorkspaceLimit: t.workspaces,
		TeamLimit:      t.teams,
		CategoryLimit:  t.categories,
	}
}

// RequiredPlan names the cheapest plan that unlocks f.
func RequiredPlan(f Feature) Plan {
	for _, p := range Plans {
		if Resolve(string(p)).Allows(f) {
			return p
		}
	}
	return PlanPremium
}
