package axle

// QueryEntity is a handle to one entity matched by a query. Component
// access through it follows the same borrow rules as direct access.
type QueryEntity struct {
	ID       int
	entities *Entities
}

func newQueryEntity(id int, entities *Entities) QueryEntity {
	return QueryEntity{ID: id, entities: entities}
}

// EntityComponent takes a shared borrow of the entity's T.
func EntityComponent[T any](h QueryEntity) (*Ref[T], error) {
	return GetComponent[T](h.entities, h.ID)
}

// EntityComponentMut takes an exclusive borrow of the entity's T.
func EntityComponentMut[T any](h QueryEntity) (*RefMut[T], error) {
	return GetComponentMut[T](h.entities, h.ID)
}
