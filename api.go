package axle

import (
	"iter"
	"reflect"
)

// Component identifies a component type by its key.
type Component interface {
	Key() reflect.Type
}

type iCursor interface {
	Entities() iter.Seq2[int, QueryEntity]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	Register(string, T) (int, error)
	Len() int
}
