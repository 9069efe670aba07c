package synthesis

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/tablesmith/internal/prompts"
	"github.com/jonathan/tablesmith/internal/types"
)

// buildPlanPrompt constructs the initial planning prompt from the
// analyzer's findings and the user's requirements.
func buildPlanPrompt(analysis *types.AnalysisReport, requirements string) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet("synthesis.json", "plan-intro"))

	sb.WriteString("FILE ANALYSIS:\n")
	sb.WriteString(analysis.Narrative)
	sb.WriteString("\n\nSuggested Primary Keys:\n")
	sb.WriteString(marshalIndent(analysis.SuggestedPrimaryKeys))
	sb.WriteString("\n\nPotential Relationships:\n")
	sb.WriteString(marshalIndent(analysis.Relationships))

	sb.WriteString("\n\nUSER REQUIREMENTS:\n")
	sb.WriteString(requirements)

	sb.WriteString("\n\n")
	sb.WriteString(prompts.MustGet("synthesis.json", "plan-instructions"))

	return sb.String()
}

// buildRefinePrompt constructs the refinement prompt from the current
// plan and the verifier's feedback.
func buildRefinePrompt(plan *types.SchemaPlan, feedback *types.VerificationReport, analysis *types.AnalysisReport, requirements string) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet("synthesis.json", "refine-intro"))

	sb.WriteString("CURRENT PLAN:\n")
	sb.WriteString(marshalIndent(plan))
	sb.WriteString("\n\nVERIFICATION FEEDBACK:\n")
	sb.WriteString(marshalIndent(feedback))

	sb.WriteString("\n\nORIGINAL FILE ANALYSIS:\n")
	sb.WriteString(analysis.Narrative)

	sb.WriteString("\n\nUSER REQUIREMENTS:\n")
	sb.WriteString(requirements)

	sb.WriteString("\n\n")
	sb.WriteString(prompts.MustGet("synthesis.json", "refine-instructions"))

	return sb.String()
}

// buildCompilePrompt constructs the prompt that turns a plan into a
// model description in the entity grammar.
func buildCompilePrompt(plan *types.SchemaPlan) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet("synthesis.json", "compile-intro"))

	sb.WriteString("SCHEMA PLAN:\n")
	sb.WriteString(marshalIndent(plan))

	sb.WriteString("\n\n")
	sb.WriteString(prompts.MustGet("synthesis.json", "compile-instructions"))

	return sb.String()
}

// buildVerifyPrompt constructs the verification prompt over the compiled
// model description and its originating plan.
func buildVerifyPrompt(modelText string, plan *types.SchemaPlan, analysis *types.AnalysisReport, requirements string) string {
	var sb strings.Builder

	sb.WriteString(prompts.MustGet("synthesis.json", "verify-intro"))

	sb.WriteString("MODEL DESCRIPTION:\n")
	sb.WriteString(modelText)
	sb.WriteString("\n\nORIGINAL PLAN:\n")
	sb.WriteString(marshalIndent(plan))

	sb.WriteString("\n\nFILE ANALYSIS:\n")
	sb.WriteString(analysis.Narrative)

	sb.WriteString("\n\nUSER REQUIREMENTS:\n")
	sb.WriteString(requirements)

	sb.WriteString("\n\n")
	sb.WriteString(prompts.MustGet("synthesis.json", "verify-instructions"))

	return sb.String()
}

// marshalIndent renders a value as indented JSON for prompt inclusion.
func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
