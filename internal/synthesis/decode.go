package synthesis

import (
	_ "embed"
	"encoding/json"

	"github.com/jonathan/tablesmith/internal/schemas"
	"github.com/jonathan/tablesmith/internal/types"
)

//go:embed plan_schema.json
var planSchema string

//go:embed verification_schema.json
var verificationSchema string

// decodePlan validates and unmarshals a schema plan response.
func decodePlan(jsonText string) (*types.SchemaPlan, error) {
	if err := schemas.ValidateJSONString(planSchema, jsonText); err != nil {
		return nil, &DecodeError{Artifact: "schema plan", Cause: err}
	}

	var plan types.SchemaPlan
	if err := json.Unmarshal([]byte(jsonText), &plan); err != nil {
		return nil, &DecodeError{Artifact: "schema plan", Cause: err}
	}

	return &plan, nil
}

// decodeVerification validates and unmarshals a verification response.
func decodeVerification(jsonText string) (*types.VerificationReport, error) {
	if err := schemas.ValidateJSONString(verificationSchema, jsonText); err != nil {
		return nil, &DecodeError{Artifact: "verification report", Cause: err}
	}

	var report types.VerificationReport
	if err := json.Unmarshal([]byte(jsonText), &report); err != nil {
		return nil, &DecodeError{Artifact: "verification report", Cause: err}
	}

	return &report, nil
}
