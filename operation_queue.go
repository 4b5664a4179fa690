package axle

import (
	"errors"
	"fmt"
	"reflect"
)

type operation struct {
	typ     operationType
	values  []any
	indexes []int
	key     reflect.Type
}

type operationType int

const (
	opCreate operationType = iota
	opDestroy
	opAddComponent
	opRemoveComponent
	opCancelled
)

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[int]struct{}
	pendingMods    map[int][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[int]struct{}),
		pendingMods:    make(map[int][]int),
	}
}

func (q *opQueue) enqueueOp(op operation) {
	switch op.typ {
	case opCreate:
		q.createOps = append(q.createOps, op)
	case opDestroy:
		q.destroyOps = append(q.destroyOps, op)
	case opAddComponent, opRemoveComponent:
		q.componentOps = append(q.componentOps, op)
	}
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

func (e *Entities) processOperationQueue() error {
	if e.opQueue.empty() {
		return nil
	}
	q := e.opQueue
	e.opQueue = newOpQueue()

	Config.logger.Debug("applying deferred entity operations",
		"creates", len(q.createOps),
		"componentOps", len(q.componentOps),
		"destroys", len(q.destroyOps),
	)

	// Failures are collected; every queued op is still attempted.
	var errs []error

	// Process creates first
	for _, op := range q.createOps {
		if err := e.CreateEntity().WithComponents(op.values...); err != nil {
			errs = append(errs, fmt.Errorf("failed to process queued entity creation: %w", err))
		}
	}

	// Process component modifications
	for _, op := range q.componentOps {
		index := op.indexes[0]
		switch op.typ {
		case opAddComponent:
			if err := e.AddComponent(index, op.values[0]); err != nil {
				errs = append(errs, fmt.Errorf("failed to add queued component: %w", err))
			}
		case opRemoveComponent:
			if err := e.RemoveComponent(index, op.key); err != nil {
				errs = append(errs, fmt.Errorf("failed to remove queued component: %w", err))
			}
		}
	}

	// Process destroys last
	for _, op := range q.destroyOps {
		for _, index := range op.indexes {
			if err := e.DeleteEntity(index); err != nil {
				errs = append(errs, fmt.Errorf("failed to delete queued entity: %w", err))
			}
		}
	}
	if len(errs) > 0 {
		Config.logger.Warn("deferred entity operations failed", "failures", len(errs))
	}
	return errors.Join(errs...)
}

func (q *opQueue) EnqueueDestroy(indexes []int) {
	// Filter out already queued entities
	var newIndexes []int
	for _, index := range indexes {
		if _, exists := q.pendingDestroy[index]; exists {
			continue
		}
		newIndexes = append(newIndexes, index)
		q.pendingDestroy[index] = struct{}{}

		// Pending component operations for a doomed entity are dropped
		for _, idx := range q.pendingMods[index] {
			q.componentOps[idx].typ = opCancelled
		}
		delete(q.pendingMods, index)
	}

	if len(newIndexes) > 0 {
		q.enqueueOp(operation{
			typ:     opDestroy,
			indexes: newIndexes,
		})
	}
}

func (q *opQueue) EnqueueComponentOp(typ operationType, index int, value any, key reflect.Type) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[index]; isDestroyed {
		return
	}

	q.pendingMods[index] = append(q.pendingMods[index], len(q.componentOps))
	q.enqueueOp(operation{
		typ:     typ,
		indexes: []int{index},
		values:  []any{value},
		key:     key,
	})
}
