package refinement

import (
	"github.com/jonathan/tablesmith/internal/types"
)

// routeNextAction decides the next step after a failed verification.
// Critical issues take priority over warnings; a report with only
// informational issues is treated as complete.
func routeNextAction(verification *types.VerificationReport) *types.RouteAction {
	if len(verification.Issues) == 0 {
		return &types.RouteAction{Type: types.ActionComplete, Reason: "No issues found"}
	}

	for _, issue := range verification.Issues {
		if issue.Severity == types.SeverityCritical {
			return &types.RouteAction{
				Type:   types.ActionRefine,
				Reason: "Fix critical issue: " + issue.Description,
			}
		}
	}

	for _, issue := range verification.Issues {
		if issue.Severity == types.SeverityWarning {
			return &types.RouteAction{
				Type:   types.ActionRefine,
				Reason: "Address warning: " + issue.Description,
			}
		}
	}

	return &types.RouteAction{Type: types.ActionComplete, Reason: "Only minor issues remain"}
}
