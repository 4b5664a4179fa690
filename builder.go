package axle

// EntityBuilder populates the entity slot it was created for. Only
// Entities.CreateEntity hands out usable builders.
type EntityBuilder struct {
	entities *Entities
	index    int
	err      error
}

// Index returns the slot the builder writes to, or -1 when it is not bound
// to one.
func (b *EntityBuilder) Index() int {
	if b == nil || b.entities == nil {
		return -1
	}
	return b.index
}

// WithComponent stores value in the column of its dynamic type and marks
// the matching bit in the entity's mask. The component type must already
// be registered, and the table must not be locked.
func (b *EntityBuilder) WithComponent(value any) (*EntityBuilder, error) {
	if b == nil || b.entities == nil {
		return b, CreateEntityNeverCalledError{}
	}
	if b.err != nil {
		return b, b.err
	}
	if b.entities.Locked() {
		return b, LockedStorageError{}
	}
	if !b.entities.Alive(b.index) {
		return b, EntityDoesNotExistError{Index: b.index}
	}
	if err := b.entities.insert(b.index, value); err != nil {
		return b, err
	}
	return b, nil
}

// WithComponents applies WithComponent to each value in order and stops at
// the first failure.
func (b *EntityBuilder) WithComponents(values ...any) error {
	for _, v := range values {
		if _, err := b.WithComponent(v); err != nil {
			return err
		}
	}
	return nil
}
