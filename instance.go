package ribbon

import "fmt"

// SetInstanceAttribute registers a zeroed per-instance attribute with one
// item per instance slot. Registering an existing name with the same item
// size zeroes it in place.
func (b *Batch) SetInstanceAttribute(name string, itemSize int) error {
	if b.disposed {
		return ErrDisposed
	}
	if b.instances == nil {
		return fmt.Errorf("%w: batch was built without instances", ErrInstanceRange)
	}
	if _, ok := ShaderLocation(name); ok {
		return fmt.Errorf("%w: %q is a vertex attribute", ErrInvalidConfig, name)
	}
	if _, err := b.instances.Allocate(name, b.cfg.InstanceCount, itemSize); err != nil {
		return fmt.Errorf("ribbon: instance attribute %s: %w", name, err)
	}
	return nil
}

// SetInstance writes the values of instance slot index of attribute name.
func (b *Batch) SetInstance(name string, index int, values ...float32) error {
	if b.disposed {
		return ErrDisposed
	}
	if b.instances == nil {
		return fmt.Errorf("%w: batch was built without instances", ErrInstanceRange)
	}
	a := b.instances.Array(name)
	if a == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	if index < 0 || index >= b.cfg.InstanceCount {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInstanceRange, index, b.cfg.InstanceCount)
	}
	if len(values) != a.ItemSize() {
		return fmt.Errorf("ribbon: instance attribute %s takes %d values, got %d", name, a.ItemSize(), len(values))
	}
	copy(a.Float32s()[index*a.ItemSize():], values)
	a.MarkDirty()
	return nil
}

// InstanceCount returns the number of instance slots.
func (b *Batch) InstanceCount() int { return b.cfg.InstanceCount }

// InstanceAttribute returns the per-instance attribute name, or nil.
func (b *Batch) InstanceAttribute(name string) *Attribute {
	if b.instances == nil {
		return nil
	}
	return b.instances.Array(name)
}

// InstanceAttributes returns the per-instance attributes in registration
// order.
func (b *Batch) InstanceAttributes() []*Attribute {
	if b.instances == nil {
		return nil
	}
	return b.instances.Arrays()
}
