package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_TierMapping(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, ProviderGemini, cfg.Provider)

	tests := []struct {
		tier  ModelTier
		model string
	}{
		{TierLite, "gemini-2.5-flash-lite"},
		{TierStandard, "gemini-2.5-flash"},
		{TierAdvanced, "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.model, cfg.GetModel(tt.tier))
	}
}

func TestGetModel_FallsBackThroughTiers(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierStandard: "standard-model",
			TierLite:     "lite-model",
		},
	}

	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))

	delete(cfg.Models, TierStandard)
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))

	delete(cfg.Models, TierLite)
	assert.Equal(t, "", cfg.GetModel(TierAdvanced))
}

func TestWithModel_LeavesReceiverUnchanged(t *testing.T) {
	cfg := DefaultConfig()
	custom := cfg.WithModel(TierAdvanced, "tuned-planner")

	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "tuned-planner", custom.GetModel(TierAdvanced))
	assert.Equal(t, cfg.GetModel(TierLite), custom.GetModel(TierLite))
	assert.Equal(t, cfg.Provider, custom.Provider)
}
