// Package synthesis implements the LLM-backed planner, coder and
// verifier roles of schema generation. Each role is a single prompt and
// a structurally validated response; the iteration policy lives in the
// refinement package.
package synthesis

import (
	"context"

	"github.com/jonathan/tablesmith/internal/llm"
	"github.com/jonathan/tablesmith/internal/types"
)

// Service is the synthesis surface consumed by the refinement loop.
type Service interface {
	// ProposePlan creates an initial schema plan from analysis and requirements
	ProposePlan(ctx context.Context, analysis *types.AnalysisReport, requirements string) (*types.SchemaPlan, error)
	// RefinePlan revises a plan based on verification feedback
	RefinePlan(ctx context.Context, plan *types.SchemaPlan, feedback *types.VerificationReport, analysis *types.AnalysisReport, requirements string) (*types.SchemaPlan, error)
	// CompileModel renders a plan as a model description in the entity grammar
	CompileModel(ctx context.Context, plan *types.SchemaPlan) (string, error)
	// Verify judges whether a compiled model is sufficient for the requirements
	Verify(ctx context.Context, modelText string, plan *types.SchemaPlan, analysis *types.AnalysisReport, requirements string) (*types.VerificationReport, error)
}

// LLMService implements Service on top of an llm.Client.
type LLMService struct {
	client llm.Client
}

// NewService creates a synthesis service backed by the given client.
func NewService(client llm.Client) *LLMService {
	return &LLMService{client: client}
}

// ProposePlan creates the initial schema plan. Planning is the
// open-ended reasoning step, so it runs on the advanced tier.
func (s *LLMService) ProposePlan(ctx context.Context, analysis *types.AnalysisReport, requirements string) (*types.SchemaPlan, error) {
	prompt := buildPlanPrompt(analysis, requirements)

	responseText, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate schema plan", Cause: err}
	}

	return decodePlan(responseText)
}

// RefinePlan revises the plan to address verification feedback.
func (s *LLMService) RefinePlan(ctx context.Context, plan *types.SchemaPlan, feedback *types.VerificationReport, analysis *types.AnalysisReport, requirements string) (*types.SchemaPlan, error) {
	prompt := buildRefinePrompt(plan, feedback, analysis, requirements)

	responseText, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to refine schema plan", Cause: err}
	}

	return decodePlan(responseText)
}

// CompileModel renders the plan as a model description. The response is
// plain text in the entity grammar, not JSON.
func (s *LLMService) CompileModel(ctx context.Context, plan *types.SchemaPlan) (string, error) {
	prompt := buildCompilePrompt(plan)

	responseText, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &APICallError{Message: "failed to compile model description", Cause: err}
	}

	return llm.CleanCodeFences(responseText), nil
}

// Verify judges the compiled model. A report that is not sufficient but
// carries no critical issues is forced sufficient; only critical issues
// block completion.
func (s *LLMService) Verify(ctx context.Context, modelText string, plan *types.SchemaPlan, analysis *types.AnalysisReport, requirements string) (*types.VerificationReport, error) {
	prompt := buildVerifyPrompt(modelText, plan, analysis, requirements)

	responseText, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to verify schema", Cause: err}
	}

	report, err := decodeVerification(responseText)
	if err != nil {
		return nil, err
	}

	if !report.IsSufficient {
		critical := false
		for _, issue := range report.Issues {
			if issue.Severity == types.SeverityCritical {
				critical = true
				break
			}
		}
		if !critical {
			report.IsSufficient = true
		}
	}

	return report, nil
}
