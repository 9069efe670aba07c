package types

// PlannedColumn is one column of a proposed table.
type PlannedColumn struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	Unique     bool   `json:"unique"`
	PrimaryKey bool   `json:"primary_key"`
	// ForeignKey is "table.column" when the column references another
	// table, empty otherwise.
	ForeignKey string `json:"foreign_key,omitempty"`
}

// PlannedTable is one table of a schema plan.
type PlannedTable struct {
	Name    string          `json:"name"`
	Purpose string          `json:"purpose,omitempty"`
	Columns []PlannedColumn `json:"columns"`
	Indexes []string        `json:"indexes,omitempty"`
}

// Cardinality of a planned relationship.
const (
	OneToOne   = "one-to-one"
	OneToMany  = "one-to-many"
	ManyToMany = "many-to-many"
)

// PlannedRelationship links two planned tables.
type PlannedRelationship struct {
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
	Type       string `json:"relationship_type"`
}

// SchemaPlan is a structural schema proposal. A fresh plan replaces the
// previous one each refinement round; only the final accepted plan is
// retained long-term.
type SchemaPlan struct {
	Tables        []PlannedTable        `json:"tables"`
	Relationships []PlannedRelationship `json:"relationships"`
}

// Issue severities in a verification report.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// VerificationIssue is one problem flagged by the verifier.
type VerificationIssue struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// VerificationReport is the verifier's judgment of a compiled schema.
// IsSufficient is forced true whenever no issue is critical, regardless
// of what the synthesis service returned.
type VerificationReport struct {
	IsSufficient bool                `json:"is_sufficient"`
	Issues       []VerificationIssue `json:"issues"`
	Warnings     []string            `json:"warnings"`
	PassedChecks []string            `json:"passed_checks"`
}

// Routing actions decided after each verification.
const (
	ActionComplete = "complete"
	ActionRefine   = "refine"
)

// RouteAction is the router's decision for one round.
type RouteAction struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// RefinementRound records one plan/compile/verify/route iteration.
// Appended to the round history and never mutated afterwards.
type RefinementRound struct {
	Round        int                 `json:"round"`
	Plan         *SchemaPlan         `json:"plan"`
	Verification *VerificationReport `json:"verification,omitempty"`
	Action       *RouteAction        `json:"action,omitempty"`
}

// SchemaProgress is one progress event emitted during refinement.
type SchemaProgress struct {
	Round     int    `json:"round"`
	MaxRounds int    `json:"max_rounds"`
	Stage     string `json:"stage"`
	Message   string `json:"message"`
}

// SchemaResult is the terminal output of the refinement loop.
type SchemaResult struct {
	Plan               *SchemaPlan           `json:"plan"`
	ModelDescription   string                `json:"model_description"`
	SchemaDescription  string                `json:"schema_description"`
	VerificationStatus bool                  `json:"verification_status"`
	Warnings           []string              `json:"warnings"`
	Relationships      []PlannedRelationship `json:"relationships_detected"`
	History            []RefinementRound     `json:"refinement_history"`
	RoundsTaken        int                   `json:"rounds_taken"`
}
