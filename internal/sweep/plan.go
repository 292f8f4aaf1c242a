// Package sweep runs a series of circle estimations with growing sample
// counts so the convergence log shows π being approached.
package sweep

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan defines a sweep read from YAML:
//
//	name: pi-convergence
//	radius: 1.0
//	points: [100, 1000, 10000]
//	reset: true
type Plan struct {
	// Name identifies the sweep in output and logs.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// Radius of the sampled circle.
	Radius float64 `yaml:"radius"`

	// Points lists the sample counts, run in order.
	Points []int `yaml:"points"`

	// Reset clears the convergence log before the first run.
	Reset bool `yaml:"reset,omitempty"`
}

// LoadPlan reads and parses a sweep plan YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan parses and validates plan YAML.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validatePlan(&plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &plan, nil
}

// validatePlan checks that required fields are present and valid.
func validatePlan(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", p.Radius)
	}
	if len(p.Points) == 0 {
		return fmt.Errorf("points list is required and must be non-empty")
	}
	for i, n := range p.Points {
		if n <= 0 {
			return fmt.Errorf("points[%d] must be positive, got %d", i, n)
		}
	}
	return nil
}
