package analysis

import (
	"strings"

	"github.com/jonathan/tablesmith/internal/types"
)

// Column-similarity weights. Scores are capped at 1.0; pairs above the
// report threshold become relationship candidates.
const (
	simIdenticalName  = 0.5
	simNameSubstring  = 0.3
	simIdenticalType  = 0.2
	simFKNamePattern  = 0.4
	simReportThreshold = 0.5
	simHighThreshold   = 0.8
)

// detectRelationships scores every column pair across every unordered
// table pair. This is quadratic in tables and columns, which is the
// analyzer's dominant cost and acceptable at ingestion scale.
func detectRelationships(all []tableRef) []types.RelationshipCandidate {
	var candidates []types.RelationshipCandidate

	for i, from := range all {
		for _, to := range all[i+1:] {
			for _, fromCol := range from.table.Columns {
				for _, toCol := range to.table.Columns {
					score := columnSimilarity(&fromCol, &toCol)
					if score <= simReportThreshold {
						continue
					}
					confidence := types.ConfidenceMedium
					if score > simHighThreshold {
						confidence = types.ConfidenceHigh
					}
					candidates = append(candidates, types.RelationshipCandidate{
						FromFile:   from.sourceFile,
						FromTable:  from.table.Name,
						FromColumn: fromCol.Name,
						ToFile:     to.sourceFile,
						ToTable:    to.table.Name,
						ToColumn:   toCol.Name,
						Confidence: confidence,
						Reason:     similarityReason(&fromCol, &toCol),
					})
				}
			}
		}
	}

	return candidates
}

// columnSimilarity scores a column pair in [0, 1].
func columnSimilarity(a, b *types.ParsedColumn) float64 {
	score := 0.0

	if a.Name == b.Name {
		score += simIdenticalName
	}

	nameA := strings.ToLower(a.Name)
	nameB := strings.ToLower(b.Name)
	if strings.Contains(nameB, nameA) || strings.Contains(nameA, nameB) {
		score += simNameSubstring
	}

	if a.Type == b.Type {
		score += simIdenticalType
	}

	if (strings.Contains(nameA, "_id") && nameB == "id") ||
		(strings.Contains(nameB, "_id") && nameA == "id") {
		score += simFKNamePattern
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// similarityReason builds the human-readable justification for a
// detected relationship candidate.
func similarityReason(a, b *types.ParsedColumn) string {
	var reasons []string

	nameA := strings.ToLower(a.Name)
	nameB := strings.ToLower(b.Name)

	if a.Name == b.Name {
		reasons = append(reasons, "identical column names")
	} else if strings.Contains(nameB, nameA) || strings.Contains(nameA, nameB) {
		reasons = append(reasons, "similar column names")
	}

	if a.Type == b.Type {
		reasons = append(reasons, "matching types ("+string(a.Type)+")")
	}

	if strings.Contains(nameA, "_id") || strings.Contains(nameB, "_id") {
		reasons = append(reasons, "foreign key naming pattern")
	}

	if len(reasons) == 0 {
		return "column similarity detected"
	}
	return strings.Join(reasons, ", ")
}
