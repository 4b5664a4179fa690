/*
Package axle provides the entity-component storage and query core of the axle 2D engine.

Entities are plain slot indexes into a table of membership masks. Every
registered component type owns one bit of the mask and one column of
boxed values aligned with the entity slots. Queries combine the bits of the
requested types and keep the entities whose mask contains all of them.

Core Concepts:

  - Entity: A slot index. Deleted slots are tombstoned and never reused.
  - Component: A typed value attached to an entity, at most one per type.
  - Column: Per-type storage of cells, one per entity slot.
  - Query: A conjunctive filter over component ownership.
  - Resource: A singleton value keyed by its type, independent of entities.
  - System declaration: The components and resources a named system uses.

Component cells follow a runtime borrow discipline: many shared borrows or
one exclusive borrow at a time. A conflicting borrow fails with
BorrowConflictError instead of handing out aliased access.

At most MaxComponentTypes distinct component types can be registered per
World, one per mask bit.

Basic Usage:

	world := axle.Factory.NewWorld()

	position := axle.FactoryNewComponent[Position]()
	velocity := axle.FactoryNewComponent[Velocity]()
	position.Register(world)
	velocity.Register(world)

	world.CreateEntity().WithComponents(Position{}, Velocity{X: 1})

	query, _ := world.Query().With(position, velocity)
	cursor := axle.Factory.NewCursor(query)
	for cursor.Next() {
		pos, _ := position.GetMutFromCursor(cursor)
		vel, _ := velocity.GetFromCursor(cursor)
		pos.Get().X += vel.Get().X
		vel.Release()
		pos.Release()
	}

The World is a plain value passed by reference; it is not safe for
concurrent mutation.
*/
package axle
