package axle

import (
	"fmt"
	"reflect"
)

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "entity storage is currently locked"
}

type CreateEntityNeverCalledError struct{}

func (e CreateEntityNeverCalledError) Error() string {
	return "attempted to add a component to an entity without calling CreateEntity first"
}

type CreateSystemNeverCalledError struct {
	System string
}

func (e CreateSystemNeverCalledError) Error() string {
	return fmt.Sprintf("attempted to declare a dependency for system %q without calling CreateSystem first", e.System)
}

type EntityDoesNotExistError struct {
	Index int
}

func (e EntityDoesNotExistError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.Index)
}

type SystemDoesNotExistError struct {
	System string
}

func (e SystemDoesNotExistError) Error() string {
	return fmt.Sprintf("system %q does not exist", e.System)
}

type ComponentNotRegisteredError struct {
	Key reflect.Type
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("component was never registered: %v", e.Key)
}

type ComponentDataDoesNotExistError struct {
	Key   reflect.Type
	Index int
}

func (e ComponentDataDoesNotExistError) Error() string {
	return fmt.Sprintf("entity %d has no %v component", e.Index, e.Key)
}

type ComponentExistsError struct {
	Key   reflect.Type
	Index int
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %d: %v", e.Index, e.Key)
}

type ComponentInSystemDoesNotExistError struct {
	System string
	Key    reflect.Type
}

func (e ComponentInSystemDoesNotExistError) Error() string {
	return fmt.Sprintf("system %q does not declare component %v", e.System, e.Key)
}

type ResourceInSystemDoesNotExistError struct {
	System string
	Key    reflect.Type
}

func (e ResourceInSystemDoesNotExistError) Error() string {
	return fmt.Sprintf("system %q does not declare resource %v", e.System, e.Key)
}

type DowncastToWrongTypeError struct {
	Want, Got reflect.Type
}

func (e DowncastToWrongTypeError) Error() string {
	return fmt.Sprintf("stored value is %v, requested %v", e.Got, e.Want)
}

type RegistryFullError struct {
	Capacity int
}

func (e RegistryFullError) Error() string {
	return fmt.Sprintf("component registry is full (%d types)", e.Capacity)
}

// BorrowConflictError reports a shared/exclusive violation on a single cell.
type BorrowConflictError struct {
	Key       reflect.Type
	Index     int
	Exclusive bool
}

func (e BorrowConflictError) Error() string {
	if e.Exclusive {
		return fmt.Sprintf("cannot borrow %v of entity %d mutably: already borrowed", e.Key, e.Index)
	}
	return fmt.Sprintf("cannot borrow %v of entity %d: already borrowed mutably", e.Key, e.Index)
}

type BorrowReleasedError struct {
	Key reflect.Type
}

func (e BorrowReleasedError) Error() string {
	return fmt.Sprintf("borrow of %v used after release", e.Key)
}
