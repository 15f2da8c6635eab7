package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/probe-ir/probe/internal/bytecode"
)

// Scenario defines one conformance scenario: the module to build, the
// encoded section to feed it, and the steps to run against the dialect.
type Scenario struct {
	// Name uniquely identifies this scenario. The golden file shares it.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Version is the producer version of the encoded section, spelled
	// "major.minor".
	Version string `yaml:"version"`

	// Records lists the attribute records the section carries.
	Records []RecordSpec `yaml:"records,omitempty"`

	// Module lists the operations pushed into the module body, in order.
	Module []OpSpec `yaml:"module,omitempty"`

	// Steps names the actions to run, in order. Supported steps:
	// load_section, verify, effects, infer.
	Steps []string `yaml:"steps"`

	// RunToken is an optional fixed run token for deterministic golden
	// comparison. When empty a fresh UUIDv7 is issued per run.
	RunToken string `yaml:"run_token,omitempty"`
}

// RecordSpec is one encoded attribute record: the two integer fields of
// the pairs attribute.
type RecordSpec struct {
	V0 int64 `yaml:"v0"`
	V1 int64 `yaml:"v1"`
}

// OpSpec describes one operation in the scenario module.
type OpSpec struct {
	// Name is the operation kind, including the dialect prefix.
	Name string `yaml:"name"`

	// Attrs holds the operation's attributes. Scalars, lists, and
	// nested maps translate to the corresponding attribute kinds.
	Attrs map[string]any `yaml:"attrs,omitempty"`

	// Operands and Results give value counts; all values are i32.
	Operands int `yaml:"operands,omitempty"`
	Results  int `yaml:"results,omitempty"`

	// Range supplies the single operand range for inference steps.
	Range *RangeSpec `yaml:"range,omitempty"`
}

// RangeSpec mirrors interval.Range in scenario files.
type RangeSpec struct {
	Width uint32 `yaml:"width"`
	UMin  uint64 `yaml:"umin"`
	UMax  uint64 `yaml:"umax"`
	SMin  int64  `yaml:"smin"`
	SMax  int64  `yaml:"smax"`
}

// Step name constants.
const (
	StepLoadSection = "load_section"
	StepVerify      = "verify"
	StepEffects     = "effects"
	StepInfer       = "infer"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently validating
// nothing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Version == "" {
		return fmt.Errorf("version is required")
	}
	if _, err := bytecode.ParseVersion(s.Version); err != nil {
		return err
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		switch step {
		case StepLoadSection, StepVerify, StepEffects, StepInfer:
		default:
			return fmt.Errorf("steps[%d]: unknown step %q", i, step)
		}
	}
	for i, op := range s.Module {
		if op.Name == "" {
			return fmt.Errorf("module[%d]: name is required", i)
		}
		if op.Operands < 0 || op.Results < 0 {
			return fmt.Errorf("module[%d]: operand and result counts must be non-negative", i)
		}
	}
	return nil
}
