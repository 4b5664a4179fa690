package axle

import "reflect"

// Resources stores at most one value per type, independent of entities.
type Resources struct {
	items map[reflect.Type]any
}

func newResources() *Resources {
	return &Resources{items: make(map[reflect.Type]any)}
}

func (r *Resources) Has(key reflect.Type) bool {
	_, ok := r.items[key]
	return ok
}

func (r *Resources) Len() int {
	return len(r.items)
}

// Keys returns the types currently stored, in no particular order.
func (r *Resources) Keys() []reflect.Type {
	keys := make([]reflect.Type, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	return keys
}

func (r *Resources) Remove(key reflect.Type) {
	delete(r.items, key)
}

func (r *Resources) Clear() {
	clear(r.items)
}

// AddResource stores value as the singleton of type T, replacing any
// previous one.
func AddResource[T any](w *World, value T) {
	v := value
	w.resources.items[KeyOf[T]()] = &v
}

// GetResource returns a copy of the T resource.
func GetResource[T any](w *World) (T, bool) {
	v, ok := GetResourceMut[T](w)
	if !ok {
		var zero T
		return zero, false
	}
	return *v, true
}

// GetResourceMut returns a pointer to the stored T resource.
func GetResourceMut[T any](w *World) (*T, bool) {
	v, ok := w.resources.items[KeyOf[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// DeleteResource drops the T resource. Deleting an absent resource does
// nothing.
func DeleteResource[T any](w *World) {
	w.resources.Remove(KeyOf[T]())
}
