package axle

import "reflect"

var _ Component = AccessibleComponent[struct{}]{}

// AccessibleComponent is a typed handle on one component type. It carries
// no data itself; it names the column and provides typed access to it
// through the different access patterns.
type AccessibleComponent[T any] struct {
	key reflect.Type
}

func (c AccessibleComponent[T]) Key() reflect.Type {
	return c.key
}

// Register registers T with the world and returns its bit.
func (c AccessibleComponent[T]) Register(w *World) (uint32, error) {
	return RegisterComponent[T](w)
}

// Check reports whether the entity at index owns a T.
func (c AccessibleComponent[T]) Check(entities *Entities, index int) bool {
	return entities.HasComponent(index, c.key)
}

func (c AccessibleComponent[T]) Get(entities *Entities, index int) (*Ref[T], error) {
	return GetComponent[T](entities, index)
}

func (c AccessibleComponent[T]) GetMut(entities *Entities, index int) (*RefMut[T], error) {
	return GetComponentMut[T](entities, index)
}

// GetFromEntity borrows the T of a query handle.
func (c AccessibleComponent[T]) GetFromEntity(h QueryEntity) (*Ref[T], error) {
	return EntityComponent[T](h)
}

func (c AccessibleComponent[T]) GetMutFromEntity(h QueryEntity) (*RefMut[T], error) {
	return EntityComponentMut[T](h)
}

// GetFromCursor borrows the T of the entity at the cursor position.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) (*Ref[T], error) {
	return EntityComponent[T](cursor.CurrentEntity())
}

func (c AccessibleComponent[T]) GetMutFromCursor(cursor *Cursor) (*RefMut[T], error) {
	return EntityComponentMut[T](cursor.CurrentEntity())
}
