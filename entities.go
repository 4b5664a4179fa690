package axle

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Entities is the entity table: one membership mask per entity slot plus
// one column per registered component type. An entity is its slot index.
//
// Deleted slots are tombstoned rather than reused or compacted, so an index
// handed out once keeps pointing at the same slot for the life of the table.
type Entities struct {
	registry   registry
	components map[reflect.Type]*Column
	masks      []mask.Mask
	deleted    []bool

	locks   mask.Mask
	cursors int
	opQueue opQueue
}

func newEntities() *Entities {
	return &Entities{
		registry:   newRegistry(),
		components: make(map[reflect.Type]*Column),
		opQueue:    newOpQueue(),
	}
}

// Len returns the number of allocated slots, deleted ones included.
func (e *Entities) Len() int {
	return len(e.masks)
}

// Alive reports whether index is an allocated slot that was not deleted.
func (e *Entities) Alive(index int) bool {
	return index >= 0 && index < len(e.masks) && !e.deleted[index]
}

// Bitmask returns the bit assigned to key. The second result is false when
// the component was never registered.
func (e *Entities) Bitmask(key reflect.Type) (uint32, bool) {
	return e.registry.bitFor(key)
}

// RegisteredComponents returns the registered keys in registration order.
func (e *Entities) RegisteredComponents() []reflect.Type {
	return e.registry.keys()
}

func (e *Entities) Mask(index int) (mask.Mask, error) {
	if !e.Alive(index) {
		return emptyMask, EntityDoesNotExistError{Index: index}
	}
	return e.masks[index], nil
}

func (e *Entities) Column(key reflect.Type) (*Column, error) {
	col, ok := e.components[key]
	if !ok {
		return nil, ComponentNotRegisteredError{Key: key}
	}
	return col, nil
}

func (e *Entities) HasComponent(index int, key reflect.Type) bool {
	bit, ok := e.registry.bitFor(key)
	if !ok || !e.Alive(index) {
		return false
	}
	return e.masks[index].ContainsAll(bitMask(bit))
}

// CreateEntity appends a new empty slot and returns a builder bound to it.
// While the table is locked the returned builder fails every call with
// LockedStorageError; use EnqueueNewEntity instead.
func (e *Entities) CreateEntity() *EntityBuilder {
	if e.Locked() {
		return &EntityBuilder{entities: e, index: -1, err: LockedStorageError{}}
	}
	for _, col := range e.components {
		if col.Len() > len(e.masks) {
			continue
		}
		if err := col.grow(1); err != nil {
			return &EntityBuilder{entities: e, index: -1, err: err}
		}
	}
	index := len(e.masks)
	e.masks = append(e.masks, emptyMask)
	e.deleted = append(e.deleted, false)
	return &EntityBuilder{entities: e, index: index}
}

// DeleteEntity clears the slot's mask and every column cell at index. The
// slot stays allocated and is never handed out again. An entity with any
// outstanding component borrow is left untouched.
func (e *Entities) DeleteEntity(index int) error {
	if e.Locked() {
		return LockedStorageError{}
	}
	if !e.Alive(index) {
		return EntityDoesNotExistError{Index: index}
	}
	for _, col := range e.components {
		if cell := col.borrowed(index); cell != nil {
			return cell.conflict()
		}
	}
	for _, col := range e.components {
		if err := col.clear(index); err != nil {
			return err
		}
	}
	e.masks[index] = emptyMask
	e.deleted[index] = true
	return nil
}

// AddComponent attaches value to an existing entity.
func (e *Entities) AddComponent(index int, value any) error {
	if e.Locked() {
		return LockedStorageError{}
	}
	if !e.Alive(index) {
		return EntityDoesNotExistError{Index: index}
	}
	key := reflect.TypeOf(value)
	if e.HasComponent(index, key) {
		return ComponentExistsError{Key: key, Index: index}
	}
	return e.insert(index, value)
}

// RemoveComponent detaches the component of type key from an entity.
func (e *Entities) RemoveComponent(index int, key reflect.Type) error {
	if e.Locked() {
		return LockedStorageError{}
	}
	if !e.Alive(index) {
		return EntityDoesNotExistError{Index: index}
	}
	bit, ok := e.registry.bitFor(key)
	if !ok {
		return ComponentNotRegisteredError{Key: key}
	}
	if !e.masks[index].ContainsAll(bitMask(bit)) {
		return ComponentDataDoesNotExistError{Key: key, Index: index}
	}
	if err := e.components[key].clear(index); err != nil {
		return err
	}
	e.masks[index].Unmark(bit)
	return nil
}

func (e *Entities) insert(index int, value any) error {
	if value == nil {
		return ComponentNotRegisteredError{}
	}
	key := reflect.TypeOf(value)
	bit, ok := e.registry.bitFor(key)
	if !ok {
		return ComponentNotRegisteredError{Key: key}
	}
	if err := e.components[key].set(index, value); err != nil {
		return err
	}
	e.masks[index].Mark(bit)
	return nil
}

func (e *Entities) checkRegistered(key reflect.Type) error {
	if key == nil {
		return ComponentNotRegisteredError{}
	}
	if _, ok := e.registry.bitFor(key); !ok {
		return ComponentNotRegisteredError{Key: key}
	}
	return nil
}

func (e *Entities) cell(key reflect.Type, index int) (*Cell, error) {
	if !e.Alive(index) {
		return nil, EntityDoesNotExistError{Index: index}
	}
	col, err := e.Column(key)
	if err != nil {
		return nil, err
	}
	c := col.cells[index]
	if c == nil {
		return nil, ComponentDataDoesNotExistError{Key: key, Index: index}
	}
	return c, nil
}

func (e *Entities) Locked() bool {
	return e.cursors > 0 || e.locks != emptyMask
}

// AddLock marks lock bit as held. Structural changes are refused, or
// queued through the Enqueue methods, until every lock is removed.
func (e *Entities) AddLock(bit uint32) {
	e.locks.Mark(bit)
}

// RemoveLock releases lock bit. Releasing the last lock applies every
// queued operation.
func (e *Entities) RemoveLock(bit uint32) error {
	e.locks.Unmark(bit)
	return e.flush()
}

func (e *Entities) lockCursor() {
	e.cursors++
}

func (e *Entities) unlockCursor() error {
	if e.cursors > 0 {
		e.cursors--
	}
	return e.flush()
}

func (e *Entities) flush() error {
	if e.Locked() {
		return nil
	}
	return e.processOperationQueue()
}

// EnqueueNewEntity creates an entity now, or once the table is unlocked.
// Every value must be of a registered component type.
func (e *Entities) EnqueueNewEntity(values ...any) error {
	for _, v := range values {
		if err := e.checkRegistered(reflect.TypeOf(v)); err != nil {
			return err
		}
	}
	if !e.Locked() {
		if err := e.CreateEntity().WithComponents(values...); err != nil {
			return fmt.Errorf("failed to create entity directly: %w", err)
		}
		return nil
	}
	e.opQueue.enqueueOp(operation{
		typ:    opCreate,
		values: values,
	})
	return nil
}

// EnqueueDeleteEntity deletes the entities now, or once the table is
// unlocked. Queued component changes for them are dropped.
func (e *Entities) EnqueueDeleteEntity(indexes ...int) error {
	for _, index := range indexes {
		if !e.Alive(index) {
			return EntityDoesNotExistError{Index: index}
		}
	}
	if !e.Locked() {
		for _, index := range indexes {
			if err := e.DeleteEntity(index); err != nil {
				return err
			}
		}
		return nil
	}
	e.opQueue.EnqueueDestroy(indexes)
	return nil
}

func (e *Entities) EnqueueAddComponent(index int, value any) error {
	if !e.Locked() {
		return e.AddComponent(index, value)
	}
	if !e.Alive(index) {
		return EntityDoesNotExistError{Index: index}
	}
	if err := e.checkRegistered(reflect.TypeOf(value)); err != nil {
		return err
	}
	e.opQueue.EnqueueComponentOp(opAddComponent, index, value, reflect.TypeOf(value))
	return nil
}

func (e *Entities) EnqueueRemoveComponent(index int, key reflect.Type) error {
	if !e.Locked() {
		return e.RemoveComponent(index, key)
	}
	if !e.Alive(index) {
		return EntityDoesNotExistError{Index: index}
	}
	if err := e.checkRegistered(key); err != nil {
		return err
	}
	e.opQueue.EnqueueComponentOp(opRemoveComponent, index, nil, key)
	return nil
}

// GetComponent takes a shared borrow of the T stored for the entity at
// index.
func GetComponent[T any](e *Entities, index int) (*Ref[T], error) {
	return GetComponentByKey[T](e, KeyOf[T](), index)
}

// GetComponentMut takes an exclusive borrow of the T stored for the entity
// at index.
func GetComponentMut[T any](e *Entities, index int) (*RefMut[T], error) {
	return GetComponentMutByKey[T](e, KeyOf[T](), index)
}

// GetComponentByKey reads the column named by key as a T. A column whose
// values are not T yields DowncastToWrongTypeError.
func GetComponentByKey[T any](e *Entities, key reflect.Type, index int) (*Ref[T], error) {
	c, err := e.cell(key, index)
	if err != nil {
		return nil, err
	}
	return Borrow[T](c)
}

func GetComponentMutByKey[T any](e *Entities, key reflect.Type, index int) (*RefMut[T], error) {
	c, err := e.cell(key, index)
	if err != nil {
		return nil, err
	}
	return BorrowMut[T](c)
}

var emptyMask mask.Mask

func bitMask(bit uint32) mask.Mask {
	var m mask.Mask
	m.Mark(bit)
	return m
}
