package axle

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Cell is the borrow state of one stored component value. Any number of
// shared borrows may be outstanding, or exactly one exclusive borrow,
// never both. While any borrow is outstanding the value cannot be
// replaced, removed or deleted.
type Cell struct {
	column *Column
	index  int

	shared    int
	exclusive bool
}

func newCell(column *Column, index int) *Cell {
	return &Cell{column: column, index: index}
}

// Key returns the component type key of the column the cell belongs to.
func (c *Cell) Key() reflect.Type {
	return c.column.key
}

// Index returns the entity slot the cell belongs to.
func (c *Cell) Index() int {
	return c.index
}

// Borrowed reports whether any borrow, shared or exclusive, is outstanding.
func (c *Cell) Borrowed() bool {
	return c.exclusive || c.shared > 0
}

func (c *Cell) conflict() error {
	return BorrowConflictError{Key: c.column.key, Index: c.index, Exclusive: true}
}

func (c *Cell) acquire() error {
	if c.exclusive {
		return BorrowConflictError{Key: c.column.key, Index: c.index}
	}
	c.shared++
	return nil
}

func (c *Cell) acquireExclusive() error {
	if c.Borrowed() {
		return c.conflict()
	}
	c.exclusive = true
	return nil
}

func (c *Cell) release() {
	if c.shared > 0 {
		c.shared--
	}
}

func (c *Cell) releaseExclusive() {
	c.exclusive = false
}

func checkType[T any](c *Cell) error {
	if want := KeyOf[T](); want != c.column.key {
		return DowncastToWrongTypeError{Want: want, Got: c.column.key}
	}
	return nil
}

// pointerTo locates the value in the column table. The result is only
// good until the table next grows.
func pointerTo[T any](c *Cell) *T {
	col := c.column
	if col.key.Kind() == reflect.Pointer {
		// Accessors strip pointer kinds, so go through the row instead.
		v, _ := col.table.Get(col.elem, c.index)
		return v.Addr().Interface().(*T)
	}
	return table.FactoryNewAccessor[T](col.elem).Get(c.index, col.table)
}
