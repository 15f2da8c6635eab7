package harness

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/probe-ir/probe/internal/bytecode"
	"github.com/probe-ir/probe/internal/dialect"
	"github.com/probe-ir/probe/internal/effects"
	"github.com/probe-ir/probe/internal/interval"
	"github.com/probe-ir/probe/internal/ir"
)

// Result statuses.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Event is one entry in a run's trace.
type Event struct {
	Step   string
	Detail string
	Error  string
}

// Result captures one scenario run.
type Result struct {
	RunToken string
	Scenario string
	Version  string
	Status   string
	Events   []Event

	// Section holds the encoded section bytes the run was fed, kept for
	// archiving.
	Section []byte
}

func (r *Result) pass(step, format string, args ...any) {
	r.Events = append(r.Events, Event{Step: step, Detail: fmt.Sprintf(format, args...)})
}

func (r *Result) fail(step string, err error) {
	r.Status = StatusFail
	r.Events = append(r.Events, Event{Step: step, Error: err.Error()})
}

// Run executes a scenario against a fresh dialect instance and returns
// the event trace. Step failures are recorded in the trace and stop the
// run; only a scenario the harness cannot set up at all returns an
// error.
func Run(scenario *Scenario) (*Result, error) {
	return RunWith(dialect.New(), scenario)
}

// RunWith executes a scenario against a caller-supplied dialect, so
// dynamic operations registered after initialization (for example from
// definition files) take part in verification and effect queries.
func RunWith(d *dialect.Dialect, scenario *Scenario) (*Result, error) {
	version, err := bytecode.ParseVersion(scenario.Version)
	if err != nil {
		return nil, err
	}

	token := scenario.RunToken
	if token == "" {
		token = uuid.Must(uuid.NewV7()).String()
	}

	module, err := BuildModule(scenario)
	if err != nil {
		return nil, fmt.Errorf("building scenario module: %w", err)
	}

	section, err := BuildSection(version, scenario.Records)
	if err != nil {
		return nil, fmt.Errorf("building scenario section: %w", err)
	}

	result := &Result{
		RunToken: token,
		Scenario: scenario.Name,
		Version:  scenario.Version,
		Status:   StatusPass,
		Section:  section,
	}

	for _, step := range scenario.Steps {
		var err error
		switch step {
		case StepLoadSection:
			err = runLoadSection(result, section, module)
		case StepVerify:
			err = runVerify(result, d, module)
		case StepEffects:
			err = runEffects(result, d, module)
		case StepInfer:
			err = runInfer(result, d, scenario, module)
		}
		if err != nil {
			result.fail(step, err)
			break
		}
	}
	return result, nil
}

// BuildModule materializes the scenario's operation list.
func BuildModule(scenario *Scenario) (*ir.Module, error) {
	module := ir.NewModule()
	for i, spec := range scenario.Module {
		op := ir.NewOperation(spec.Name)
		for name, raw := range spec.Attrs {
			attr, err := attrFromYAML(raw)
			if err != nil {
				return nil, fmt.Errorf("module[%d] attr %q: %w", i, name, err)
			}
			op.SetAttr(name, attr)
		}
		for j := 0; j < spec.Operands; j++ {
			op.AddOperand(&ir.Value{Name: fmt.Sprintf("arg%d", j), Type: ir.I32})
		}
		for j := 0; j < spec.Results; j++ {
			op.AddResult(fmt.Sprintf("r%d", j), ir.I32)
		}
		module.Push(op)
	}
	return module, nil
}

// BuildSection fabricates the encoded section a producer at the
// scenario's version would have written.
func BuildSection(version bytecode.Version, records []RecordSpec) ([]byte, error) {
	attrs := make([]ir.Attr, len(records))
	for i, rec := range records {
		attrs[i] = ir.PairsAttr{V0: rec.V0, V1: rec.V1}
	}
	return bytecode.WriteSectionAt(version, attrs)
}

// attrFromYAML translates a decoded YAML value to an attribute.
func attrFromYAML(raw any) (ir.Attr, error) {
	switch v := raw.(type) {
	case nil:
		return ir.UnitAttr{}, nil
	case bool:
		return ir.BoolAttr(v), nil
	case int:
		return ir.IntAttr(v), nil
	case int64:
		return ir.IntAttr(v), nil
	case string:
		return ir.StringAttr(v), nil
	case []any:
		var arr ir.ArrayAttr
		for _, elem := range v {
			attr, err := attrFromYAML(elem)
			if err != nil {
				return nil, err
			}
			arr = append(arr, attr)
		}
		return arr, nil
	case map[string]any:
		dict := ir.DictAttr{}
		for name, elem := range v {
			attr, err := attrFromYAML(elem)
			if err != nil {
				return nil, err
			}
			dict[name] = attr
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported attribute value %T", raw)
	}
}

func runLoadSection(result *Result, section []byte, module *ir.Module) error {
	version, attrs, err := bytecode.LoadSection(section, module)
	if err != nil {
		return err
	}
	result.pass(StepLoadSection, "decoded %d records at version %s", len(attrs), version)
	for _, attr := range attrs {
		result.pass("record", "%s", ir.PrintAttr(attr))
	}
	return nil
}

func runVerify(result *Result, d *dialect.Dialect, module *ir.Module) error {
	if err := d.VerifyModule(module); err != nil {
		return err
	}
	result.pass(StepVerify, "module verified")
	return nil
}

func runEffects(result *Result, d *dialect.Dialect, module *ir.Module) error {
	for _, op := range module.Body().Ops {
		instances, answered, err := d.OperationEffects(op)
		if err != nil {
			return fmt.Errorf("%s: %w", op.Name, err)
		}
		if !answered {
			continue
		}
		result.pass(StepEffects, "%s: %s", op.Name, describeEffects(instances))
	}
	return nil
}

func describeEffects(instances []effects.Instance) string {
	if len(instances) == 0 {
		return "no declared effects"
	}
	out := ""
	for i, inst := range instances {
		if i > 0 {
			out += "; "
		}
		out += inst.Effect.String() + " on " + inst.Resource.Name()
		switch {
		case inst.Value != nil:
			out += " for %" + inst.Value.Name
		case inst.Symbol != "":
			out += " for @" + string(inst.Symbol)
		}
	}
	return out
}

func runInfer(result *Result, d *dialect.Dialect, scenario *Scenario, module *ir.Module) error {
	ops := module.Body().Ops
	for i, op := range ops {
		if _, ok := d.Transfers().Lookup(op.Name); !ok {
			continue
		}
		var operands []interval.Range
		if i < len(scenario.Module) && scenario.Module[i].Range != nil {
			spec := scenario.Module[i].Range
			operands = []interval.Range{{
				Width: spec.Width,
				UMin:  spec.UMin, UMax: spec.UMax,
				SMin: spec.SMin, SMax: spec.SMax,
			}}
		}
		ranges, err := d.Transfers().InferResultRanges(op, operands)
		if err != nil {
			return fmt.Errorf("%s: %w", op.Name, err)
		}
		detail := ""
		for j, r := range ranges {
			if j > 0 {
				detail += "; "
			}
			detail += r.String()
		}
		result.pass(StepInfer, "%s: %s", op.Name, detail)
	}
	return nil
}
