package axle

import "reflect"

// World owns the entity table, the resource store and the system registry.
// Worlds share no state; a World must not be mutated from several
// goroutines without outside synchronization.
type World struct {
	entities  *Entities
	resources *Resources
	systems   *Systems
}

func NewWorld() *World {
	return &World{
		entities:  newEntities(),
		resources: newResources(),
		systems:   newSystems(Config.systemCapacity),
	}
}

func (w *World) Entities() *Entities {
	return w.entities
}

func (w *World) Resources() *Resources {
	return w.resources
}

func (w *World) Systems() *Systems {
	return w.systems
}

func (w *World) CreateEntity() *EntityBuilder {
	return w.entities.CreateEntity()
}

func (w *World) DeleteEntity(index int) error {
	return w.entities.DeleteEntity(index)
}

// Query starts an empty query over the world's entities.
func (w *World) Query() *Query {
	return NewQuery(w.entities)
}

func (w *World) CreateSystem(name string) error {
	return w.systems.Create(name)
}

// WithComponentInSystem declares that system name uses component T.
func WithComponentInSystem[T any](w *World, name string) error {
	return w.WithComponentInSystemByKey(name, KeyOf[T]())
}

// WithResourceInSystem declares that system name uses resource T.
func WithResourceInSystem[T any](w *World, name string) error {
	return w.WithResourceInSystemByKey(name, KeyOf[T]())
}

// WithComponentInSystemByKey declares a component dependency. The component
// must be registered; resources, in contrast, may be added later.
func (w *World) WithComponentInSystemByKey(name string, key reflect.Type) error {
	if _, ok := w.entities.Bitmask(key); !ok {
		if _, exists := w.systems.declaration(name); !exists {
			return CreateSystemNeverCalledError{System: name}
		}
		return ComponentNotRegisteredError{Key: key}
	}
	return w.systems.AddComponent(name, key)
}

func (w *World) WithResourceInSystemByKey(name string, key reflect.Type) error {
	return w.systems.AddResource(name, key)
}

func (w *World) System(name string) (SystemDeclaration, error) {
	return w.systems.Get(name)
}

func (w *World) SystemComponent(name string, key reflect.Type) error {
	return w.systems.Component(name, key)
}

func (w *World) SystemResource(name string, key reflect.Type) error {
	return w.systems.Resource(name, key)
}

// QueryForSystem builds a query over the components system name declares,
// in declaration order.
func (w *World) QueryForSystem(name string) (*Query, error) {
	decl, err := w.systems.Get(name)
	if err != nil {
		return nil, err
	}
	q := w.Query()
	for _, key := range decl.Components {
		if _, err := q.WithComponentByKey(key); err != nil {
			return nil, err
		}
	}
	return q, nil
}
