package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/tablesmith/internal/types"
)

// Primary-key candidate scoring. A column qualifies only when every value
// is unique and non-null; naming and type bonuses pick the best candidate.
const (
	pkBaseScore        = 100
	pkIDSubstringBonus = 50
	pkIDPatternBonus   = 25
	pkIntegerBonus     = 25
	pkHighConfidence   = 150
)

// suggestPrimaryKey returns the best-scoring candidate column, or false
// when no column qualifies.
func suggestPrimaryKey(table *types.ParsedTable) (types.PrimaryKeySuggestion, bool) {
	if table.RowCount == 0 {
		return types.PrimaryKeySuggestion{}, false
	}

	bestScore := -1
	var best types.PrimaryKeySuggestion

	for _, col := range table.Columns {
		if col.UniqueCount != table.RowCount || col.NullCount != 0 {
			continue
		}

		score := pkBaseScore
		name := strings.ToLower(col.Name)
		if strings.Contains(name, "id") {
			score += pkIDSubstringBonus
		}
		if name == "id" || strings.HasSuffix(name, "_id") {
			score += pkIDPatternBonus
		}
		if col.Type == types.TypeInteger {
			score += pkIntegerBonus
		}

		if score > bestScore {
			bestScore = score
			confidence := types.ConfidenceMedium
			if score >= pkHighConfidence {
				confidence = types.ConfidenceHigh
			}
			best = types.PrimaryKeySuggestion{
				Column:     col.Name,
				Confidence: confidence,
				Reason:     fmt.Sprintf("Unique values, no nulls, type: %s", col.Type),
			}
		}
	}

	if bestScore < 0 {
		return types.PrimaryKeySuggestion{}, false
	}
	return best, true
}
