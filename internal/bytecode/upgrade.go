package bytecode

import "github.com/probe-ir/probe/internal/ir"

// Attribute keys involved in the legacy rewrite. Before 2.0 the
// versioned op carried a single "dimensions" attribute; 2.0 renamed it
// to "dims" and added a "modifier" flag.
const (
	// LegacyOpName is the operation kind rewritten during upgrade.
	LegacyOpName = "probe.versioned_a"

	legacyDimsKey = "dimensions"
	dimsKey       = "dims"
	modifierKey   = "modifier"
)

// Upgrade rewrites a module written at an older dialect version into the
// Current shape. Called once by the deserializer, immediately after the
// version header is read and before any other content is interpreted.
//
//   - version == Current: no-op, success.
//   - version newer than Current: UpgradeError naming both versions.
//   - version older: every LegacyOpName instance in the whole module has
//     its "dimensions" attribute re-keyed to "dims" with identical value,
//     and gains "modifier" = false.
//
// The rewrite is idempotent: the rename only fires when the legacy key
// is present, and the modifier default is only injected when absent, so
// re-applying the pass to upgraded content changes nothing.
func Upgrade(root *ir.Operation, version Version) error {
	if version == Current {
		return nil
	}
	if version.NewerThan(Current) {
		return &UpgradeError{From: version, Current: Current}
	}

	return ir.WalkNamed(root, LegacyOpName, func(op *ir.Operation) error {
		if dims, ok := op.Attr(legacyDimsKey); ok {
			op.RemoveAttr(legacyDimsKey)
			op.SetAttr(dimsKey, dims)
		}
		if _, ok := op.Attr(modifierKey); !ok {
			op.SetAttr(modifierKey, ir.BoolAttr(false))
		}
		return nil
	})
}
