// Package refinement drives iterative schema generation: plan, compile,
// verify, route, until the verifier accepts the schema or the round
// budget runs out.
package refinement

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/tablesmith/internal/modeldesc"
	"github.com/jonathan/tablesmith/internal/synthesis"
	"github.com/jonathan/tablesmith/internal/types"
)

// DefaultMaxRounds bounds the refinement loop.
const DefaultMaxRounds = 10

// progressReasonLimit truncates long routing reasons in progress events.
const progressReasonLimit = 50

// Refinement stages reported through the observer.
const (
	StagePlanning       = "planning"
	StageGeneratingCode = "generating_code"
	StageVerifying      = "verifying"
	StageRefining       = "refining"
)

// Observer receives progress events during generation. Observers must
// not block; they run inline with the loop.
type Observer func(types.SchemaProgress)

// Generator runs the refinement loop against a synthesis service.
type Generator struct {
	service   synthesis.Service
	maxRounds int
	logger    *zap.Logger
}

// errServiceUnconfigured reports a generator built without a synthesis
// service, which happens when no LLM client was wired.
var errServiceUnconfigured = errors.New("no synthesis service configured (LLM client missing)")

// unconfiguredService fails every call so Generate returns a clean error
// instead of panicking on a nil service.
type unconfiguredService struct{}

func (unconfiguredService) ProposePlan(context.Context, *types.AnalysisReport, string) (*types.SchemaPlan, error) {
	return nil, errServiceUnconfigured
}

func (unconfiguredService) RefinePlan(context.Context, *types.SchemaPlan, *types.VerificationReport, *types.AnalysisReport, string) (*types.SchemaPlan, error) {
	return nil, errServiceUnconfigured
}

func (unconfiguredService) CompileModel(context.Context, *types.SchemaPlan) (string, error) {
	return "", errServiceUnconfigured
}

func (unconfiguredService) Verify(context.Context, string, *types.SchemaPlan, *types.AnalysisReport, string) (*types.VerificationReport, error) {
	return nil, errServiceUnconfigured
}

// NewGenerator creates a generator. A non-positive maxRounds falls back
// to DefaultMaxRounds; a nil logger is replaced with a no-op logger; a
// nil service is replaced with one that fails every call.
func NewGenerator(service synthesis.Service, maxRounds int, logger *zap.Logger) *Generator {
	if service == nil {
		service = unconfiguredService{}
	}
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		service:   service,
		maxRounds: maxRounds,
		logger:    logger,
	}
}

// Generate produces a schema for the analyzed dataset and requirements.
// It returns an error only when no plan could be obtained at all; an
// unverified plan after the round budget still yields a result with
// VerificationStatus false.
func (g *Generator) Generate(ctx context.Context, analysis *types.AnalysisReport, requirements string, observer Observer) (*types.SchemaResult, error) {
	var (
		history          []types.RefinementRound
		currentPlan      *types.SchemaPlan
		lastVerification *types.VerificationReport
	)

	emit := func(round int, stage, message string) {
		if observer != nil {
			observer(types.SchemaProgress{
				Round:     round,
				MaxRounds: g.maxRounds,
				Stage:     stage,
				Message:   message,
			})
		}
	}

	for round := 1; round <= g.maxRounds; round++ {
		g.logger.Info("schema generation round",
			zap.Int("round", round),
			zap.Int("max_rounds", g.maxRounds))

		stage := StageRefining
		if round == 1 {
			stage = StagePlanning
		}
		emit(round, stage, fmt.Sprintf("Round %d/%d: Analyzing and planning...", round, g.maxRounds))

		if currentPlan == nil {
			plan, err := g.service.ProposePlan(ctx, analysis, requirements)
			if err != nil {
				return nil, &GenerationError{Message: "initial planning failed", Cause: err}
			}
			currentPlan = plan
		} else {
			plan, err := g.service.RefinePlan(ctx, currentPlan, lastVerification, analysis, requirements)
			if err != nil {
				g.logger.Warn("plan refinement failed, keeping current plan",
					zap.Int("round", round),
					zap.Error(err))
				break
			}
			currentPlan = plan
		}

		history = append(history, types.RefinementRound{
			Round: round,
			Plan:  currentPlan,
		})
		entry := &history[len(history)-1]

		emit(round, StageGeneratingCode, fmt.Sprintf("Round %d/%d: Compiling model description...", round, g.maxRounds))

		modelText, err := g.service.CompileModel(ctx, currentPlan)
		if err != nil {
			g.logger.Warn("model compilation failed, using deterministic rendering",
				zap.Int("round", round),
				zap.Error(err))
			modelText = modeldesc.Render(currentPlan)
		}

		emit(round, StageVerifying, fmt.Sprintf("Round %d/%d: Verifying schema validity...", round, g.maxRounds))

		verification, err := g.service.Verify(ctx, modelText, currentPlan, analysis, requirements)
		if err != nil {
			g.logger.Warn("verification failed",
				zap.Int("round", round),
				zap.Error(err))
			verification = &types.VerificationReport{
				IsSufficient: false,
				Issues: []types.VerificationIssue{{
					Severity:    types.SeverityWarning,
					Category:    "verification",
					Description: fmt.Sprintf("verification unavailable: %v", err),
				}},
			}
		}
		entry.Verification = verification
		lastVerification = verification

		if verification.IsSufficient {
			g.logger.Info("schema verified", zap.Int("round", round))
			break
		}

		action := routeNextAction(verification)
		entry.Action = action
		g.logger.Info("routing next action",
			zap.Int("round", round),
			zap.String("action", action.Type),
			zap.String("reason", action.Reason))
		if action.Type == types.ActionComplete {
			break
		}

		emit(round, StageRefining, "Refining: "+truncateReason(action.Reason))

		if round == g.maxRounds {
			g.logger.Warn("maximum rounds reached, using current schema",
				zap.Int("max_rounds", g.maxRounds))
		}
	}

	if currentPlan == nil {
		return nil, &GenerationError{Message: "no schema plan produced"}
	}

	finalModel, err := g.service.CompileModel(ctx, currentPlan)
	if err != nil {
		g.logger.Warn("final model compilation failed, using deterministic rendering", zap.Error(err))
		finalModel = modeldesc.Render(currentPlan)
	}

	result := &types.SchemaResult{
		Plan:              currentPlan,
		ModelDescription:  finalModel,
		SchemaDescription: describe(currentPlan),
		Relationships:     currentPlan.Relationships,
		History:           history,
		RoundsTaken:       len(history),
	}
	if lastVerification != nil {
		result.VerificationStatus = lastVerification.IsSufficient
		result.Warnings = lastVerification.Warnings
	}

	return result, nil
}

// truncateReason shortens a routing reason for progress display.
func truncateReason(reason string) string {
	if len(reason) > progressReasonLimit {
		return reason[:progressReasonLimit] + "..."
	}
	return reason
}
