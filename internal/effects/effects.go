// Package effects implements the probe dialect's declarative side-effect
// model: memory effect kinds, the abstract resources they act on, and
// resolution of an operation's `effects` attribute into effect
// instances usable by ordering and aliasing analyses.
package effects

import "fmt"

// Kind is a memory effect category.
type Kind int

const (
	// Allocate acquires a resource.
	Allocate Kind = iota
	// Free releases a resource.
	Free
	// Read observes a resource without mutating it.
	Read
	// Write mutates a resource.
	Write
)

// String returns the textual effect name used in effect dictionaries.
func (k Kind) String() string {
	switch k {
	case Allocate:
		return "allocate"
	case Free:
		return "free"
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves an effect name by exact string match. Anything else
// is a configuration error, not a default.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "allocate":
		return Allocate, nil
	case "free":
		return Free, nil
	case "read":
		return Read, nil
	case "write":
		return Write, nil
	default:
		return 0, &ResolveError{
			Code:    ErrCodeUnknownEffect,
			Message: fmt.Sprintf("unknown effect %q (want allocate, free, read, or write)", s),
		}
	}
}

// Resource is an abstract token two effects conflict over when they name
// the same one. Resources are process-wide singletons compared by
// identity; Name is for diagnostics.
type Resource interface {
	Name() string
}

type defaultResource struct{}

func (defaultResource) Name() string { return "<Default>" }

type dialectResource struct{}

func (dialectResource) Name() string { return "<Probe>" }

// DefaultResource is the resource all operations implicitly use when an
// effect dictionary names none.
var DefaultResource Resource = defaultResource{}

// DialectResource is the probe-specific resource used to model real
// resource contention in tests. Selected by the probe_resource marker.
var DialectResource Resource = dialectResource{}

// Mutates reports whether the effect changes resource state. Two reads
// never conflict; anything else on a shared resource does.
func (k Kind) Mutates() bool {
	return k != Read
}

// Conflicts reports whether two effect instances can be reordered past
// each other: they conflict when they act on the same resource and at
// least one of them mutates it.
func Conflicts(a, b Instance) bool {
	if a.Resource != b.Resource {
		return false
	}
	return a.Effect.Mutates() || b.Effect.Mutates()
}
