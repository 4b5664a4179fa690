package axle

import (
	"reflect"
	"sync"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// MaxComponentTypes is the number of distinct component types a single
// Entities table can register. Every type consumes one bit of the entity
// membership mask.
const MaxComponentTypes = 32

// Element types are process wide: the table package numbers them from a
// global counter, so every World reuses the one issued for a Go type.
var elementTypes = struct {
	sync.Mutex
	byKey map[reflect.Type]table.ElementType
}{byKey: make(map[reflect.Type]table.ElementType)}

func elementTypeFor[T any]() table.ElementType {
	key := KeyOf[T]()
	elementTypes.Lock()
	defer elementTypes.Unlock()
	if elem, ok := elementTypes.byKey[key]; ok {
		return elem
	}
	elem := table.FactoryNewElementType[T]()
	elementTypes.byKey[key] = elem
	return elem
}

type componentType struct {
	key  reflect.Type
	elem table.ElementType
	bit  uint32
}

type registry struct {
	schema  table.Schema
	byKey   map[reflect.Type]int
	ordered []componentType
}

func newRegistry() registry {
	return registry{
		schema: table.Factory.NewSchema(),
		byKey:  make(map[reflect.Type]int),
	}
}

// register returns the bit of key, allocating one on first sight.
func (r *registry) register(key reflect.Type, elem table.ElementType) (bit uint32, created bool, err error) {
	if idx, ok := r.byKey[key]; ok {
		return r.ordered[idx].bit, false, nil
	}
	if len(r.ordered) >= MaxComponentTypes {
		return 0, false, RegistryFullError{Capacity: MaxComponentTypes}
	}
	r.schema.Register(elem)
	bit = r.schema.RowIndexFor(elem)
	if bit >= mask.MaxBits {
		return 0, false, RegistryFullError{Capacity: MaxComponentTypes}
	}
	r.byKey[key] = len(r.ordered)
	r.ordered = append(r.ordered, componentType{key: key, elem: elem, bit: bit})
	return bit, true, nil
}

// drop forgets the most recent registration of key.
func (r *registry) drop(key reflect.Type) {
	idx, ok := r.byKey[key]
	if !ok || idx != len(r.ordered)-1 {
		return
	}
	delete(r.byKey, key)
	r.ordered = r.ordered[:idx]
}

func (r *registry) bitFor(key reflect.Type) (uint32, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return 0, false
	}
	return r.ordered[idx].bit, true
}

func (r *registry) keys() []reflect.Type {
	keys := make([]reflect.Type, len(r.ordered))
	for i, ct := range r.ordered {
		keys[i] = ct.key
	}
	return keys
}

// RegisterComponent registers T with the entity table and returns the bit
// assigned to it. Registering the same type again returns the same bit.
func RegisterComponent[T any](w *World) (uint32, error) {
	return registerComponent[T](w.entities)
}

func registerComponent[T any](e *Entities) (uint32, error) {
	key := KeyOf[T]()
	elem := elementTypeFor[T]()
	bit, created, err := e.registry.register(key, elem)
	if err != nil || !created {
		return bit, err
	}
	col, err := newColumn(key, elem, e.registry.schema, len(e.masks))
	if err != nil {
		e.registry.drop(key)
		return 0, err
	}
	e.components[key] = col
	Config.logger.Debug("component registered", "type", key.String(), "bit", bit)
	return bit, nil
}

// KeyOf returns the component type key for T.
func KeyOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
