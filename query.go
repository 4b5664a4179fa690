package axle

import (
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

// QueryIndexes lists the matching entity slots in ascending order.
type QueryIndexes = []int

// QueryComponents holds one column per requested component type, in the
// order the types were added to the query. Column i, row j is the cell of
// the entity at QueryIndexes[j].
type QueryComponents = [][]*Cell

// Query is a conjunctive filter over component ownership: an entity
// matches when it owns every requested type. Extra components never
// exclude an entity.
type Query struct {
	mask     mask.Mask
	keys     []reflect.Type
	entities *Entities
}

func NewQuery(entities *Entities) *Query {
	return &Query{entities: entities}
}

// WithComponent adds T to the query.
func WithComponent[T any](q *Query) (*Query, error) {
	return q.WithComponentByKey(KeyOf[T]())
}

func (q *Query) WithComponentByKey(key reflect.Type) (*Query, error) {
	bit, ok := q.entities.Bitmask(key)
	if !ok {
		return q, ComponentNotRegisteredError{Key: key}
	}
	q.mask.Mark(bit)
	q.keys = append(q.keys, key)
	return q, nil
}

// With adds each component in order.
func (q *Query) With(components ...Component) (*Query, error) {
	for _, c := range components {
		if _, err := q.WithComponentByKey(c.Key()); err != nil {
			return q, err
		}
	}
	return q, nil
}

// Keys returns the requested component types in call order.
func (q *Query) Keys() []reflect.Type {
	return append([]reflect.Type(nil), q.keys...)
}

func (q *Query) Mask() mask.Mask {
	return q.mask
}

// Matches reports whether the entity at index satisfies the query.
func (q *Query) Matches(index int) bool {
	if !q.entities.Alive(index) {
		return false
	}
	return q.entities.masks[index].ContainsAll(q.mask)
}

// Indexes yields matching slots in ascending order.
func (q *Query) Indexes() iter.Seq[int] {
	return func(yield func(int) bool) {
		for index := range q.entities.masks {
			if !q.Matches(index) {
				continue
			}
			if !yield(index) {
				return
			}
		}
	}
}

// Run returns the matching indexes and, per requested type, the cells of
// the matching entities.
func (q *Query) Run() (QueryIndexes, QueryComponents) {
	indexes := iter_util.Collect(q.Indexes())

	result := make(QueryComponents, len(q.keys))
	for i, key := range q.keys {
		col := q.entities.components[key]
		cells := make([]*Cell, len(indexes))
		for j, index := range indexes {
			cells[j] = col.cells[index]
		}
		result[i] = cells
	}
	return indexes, result
}

// RunEntity returns one handle per matching entity.
func (q *Query) RunEntity() []QueryEntity {
	var handles []QueryEntity
	for index := range q.Indexes() {
		handles = append(handles, newQueryEntity(index, q.entities))
	}
	return handles
}
