package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed plan_schema.json
var planSchemaJSON string

// responseSchema uses the upper-case type names of the Generative Language API.
//
//go:embed response_schema.json
var responseSchemaJSON []byte

var (
	compileOnce sync.Once
	planSchema  *jsonschema.Schema
	compileErr  error
)

// PlanSchema returns the compiled JSON Schema for generated plans.
func PlanSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("plan_schema.json", strings.NewReader(planSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("plan_schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile plan schema: %w", err)
			return
		}
		planSchema = schema
	})
	return planSchema, compileErr
}

// ResponseSchema returns a fresh copy of the structured-output schema sent
// with every plan request.
func ResponseSchema() json.RawMessage {
	out := make(json.RawMessage, len(responseSchemaJSON))
	copy(out, responseSchemaJSON)
	return out
}

// ValidatePlan validates the provided JSON bytes against the plan schema.
func ValidatePlan(data []byte) error {
	schema, err := PlanSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("plan is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("plan does not match schema: %w", err)
	}
	return nil
}

// DecodePlan validates data and decodes it into a Plan.
func DecodePlan(data []byte) (*models.Plan, error) {
	if err := ValidatePlan(data); err != nil {
		return nil, err
	}
	var plan models.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}
