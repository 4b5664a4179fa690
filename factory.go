package axle

type factory struct{}

var Factory factory

func (f factory) NewWorld() *World {
	return NewWorld()
}

func (f factory) NewQuery(entities *Entities) *Query {
	return NewQuery(entities)
}

func (f factory) NewCursor(query *Query) *Cursor {
	return newCursor(query)
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{key: KeyOf[T]()}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
