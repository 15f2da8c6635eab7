package ir

// Walk visits op and every operation nested in its regions in pre-order.
// Traversal stops at the first error, which is returned unchanged.
// Depth is bounded by IR nesting depth; there is no worklist.
func Walk(op *Operation, fn func(*Operation) error) error {
	if err := fn(op); err != nil {
		return err
	}
	for _, region := range op.Regions {
		for _, block := range region.Blocks {
			for _, nested := range block.Ops {
				if err := Walk(nested, fn); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WalkNamed visits only operations with the given name, in pre-order.
func WalkNamed(op *Operation, name string, fn func(*Operation) error) error {
	return Walk(op, func(o *Operation) error {
		if o.Name != name {
			return nil
		}
		return fn(o)
	})
}
