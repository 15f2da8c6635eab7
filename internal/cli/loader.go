package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/probe-ir/probe/internal/dialect"
	"github.com/probe-ir/probe/internal/directive"
	"github.com/probe-ir/probe/internal/ir"
)

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// opDef is one dynamic operation definition as declared in CUE:
//
//	op: {
//		shuffle: {
//			operands: 2
//			results:  1
//		}
//		tagged: {
//			keyword: "tagged_format"
//		}
//	}
//
// Arity fields are optional; an absent field is not checked by the
// generated verifier. A keyword makes the op carry a custom textual
// form: the keyword alone.
type opDef struct {
	Name     string
	Operands int64 // -1 when unchecked
	Results  int64 // -1 when unchecked
	Keyword  string
}

// LoadDynamicOps loads dynamic operation definitions from a directory of
// CUE files and returns them ready for registration. Definition names
// gain the dialect prefix.
func LoadDynamicOps(dir string) ([]*dialect.DynamicOpDef, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("definitions directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing definitions directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	opsVal := value.LookupPath(cue.ParsePath("op"))
	if !opsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadDef, Message: "no op definitions found"}
	}

	iter, err := opsVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadDef, Message: fmt.Sprintf("iterating op definitions: %v", err)}
	}

	var defs []*dialect.DynamicOpDef
	for iter.Next() {
		def, err := compileOpDef(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, buildDynamicOp(def))
	}
	if len(defs) == 0 {
		return nil, &LoadError{Code: ErrCodeBadDef, Message: "op definitions are empty"}
	}
	return defs, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// compileOpDef extracts one definition from its CUE value.
func compileOpDef(label string, value cue.Value) (*opDef, error) {
	def := &opDef{
		Name:     "probe." + label,
		Operands: -1,
		Results:  -1,
	}

	if v := value.LookupPath(cue.ParsePath("operands")); v.Exists() {
		n, err := v.Int64()
		if err != nil || n < 0 {
			return nil, &LoadError{Code: ErrCodeBadDef, Message: fmt.Sprintf("op %s: operands must be a non-negative integer", label)}
		}
		def.Operands = n
	}
	if v := value.LookupPath(cue.ParsePath("results")); v.Exists() {
		n, err := v.Int64()
		if err != nil || n < 0 {
			return nil, &LoadError{Code: ErrCodeBadDef, Message: fmt.Sprintf("op %s: results must be a non-negative integer", label)}
		}
		def.Results = n
	}
	if v := value.LookupPath(cue.ParsePath("keyword")); v.Exists() {
		s, err := v.String()
		if err != nil || s == "" {
			return nil, &LoadError{Code: ErrCodeBadDef, Message: fmt.Sprintf("op %s: keyword must be a non-empty string", label)}
		}
		def.Keyword = s
	}
	return def, nil
}

// buildDynamicOp turns one declared definition into a registrable
// dynamic operation: an arity verifier, plus a keyword parser/printer
// pair when a keyword was declared.
func buildDynamicOp(def *opDef) *dialect.DynamicOpDef {
	out := &dialect.DynamicOpDef{
		Name: def.Name,
		Verify: func(op *ir.Operation) error {
			if def.Operands >= 0 && int64(len(op.Operands)) != def.Operands {
				return &dialect.VerifyError{
					Op:      op.Name,
					Message: fmt.Sprintf("expected %d operands, but had %d", def.Operands, len(op.Operands)),
				}
			}
			if def.Results >= 0 && int64(len(op.Results)) != def.Results {
				return &dialect.VerifyError{
					Op:      op.Name,
					Message: fmt.Sprintf("expected %d results, but had %d", def.Results, len(op.Results)),
				}
			}
			return nil
		},
	}
	if def.Keyword != "" {
		keyword := def.Keyword
		out.Parse = func(p *directive.Parser, _ *ir.Operation) error {
			return p.ParseKeyword(keyword)
		}
		out.Print = func(pr *directive.Printer, _ *ir.Operation) {
			pr.Print(" " + keyword)
		}
	}
	return out
}
