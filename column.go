package axle

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Column is the storage of one component type, index-aligned with the
// entity table. Values live in a single-element-type table whose row i
// belongs to entity slot i; rows are appended as slots are created and
// never removed. A nil cell means the entity at that slot has no value.
type Column struct {
	key   reflect.Type
	elem  table.ElementType
	table table.Table
	cells []*Cell
}

func newColumn(key reflect.Type, elem table.ElementType, schema table.Schema, length int) (*Column, error) {
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(table.Factory.NewEntryIndex()).
		WithElementTypes(elem).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		return nil, err
	}
	col := &Column{
		key:   key,
		elem:  elem,
		table: tbl,
	}
	if length > 0 {
		if err := col.grow(length); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func (c *Column) Key() reflect.Type {
	return c.key
}

func (c *Column) Len() int {
	return len(c.cells)
}

// Cell returns the cell at index, or nil when the slot is empty or out of
// range.
func (c *Column) Cell(index int) *Cell {
	if index < 0 || index >= len(c.cells) {
		return nil
	}
	return c.cells[index]
}

func (c *Column) grow(n int) error {
	if _, err := c.table.NewEntries(n); err != nil {
		return err
	}
	c.cells = append(c.cells, make([]*Cell, n)...)
	return nil
}

// borrowed returns the cell at index when a borrow on it is outstanding.
func (c *Column) borrowed(index int) *Cell {
	if cell := c.Cell(index); cell != nil && cell.Borrowed() {
		return cell
	}
	return nil
}

// set stores value at index. A borrowed cell is never overwritten.
func (c *Column) set(index int, value any) error {
	if cell := c.borrowed(index); cell != nil {
		return cell.conflict()
	}
	if err := c.table.Set(c.elem, reflect.ValueOf(value), index); err != nil {
		return err
	}
	if c.cells[index] == nil {
		c.cells[index] = newCell(c, index)
	}
	return nil
}

// clear zeroes the row at index and drops its cell. A borrowed cell is
// never cleared.
func (c *Column) clear(index int) error {
	cell := c.Cell(index)
	if cell == nil {
		return nil
	}
	if cell.Borrowed() {
		return cell.conflict()
	}
	if err := c.table.Set(c.elem, reflect.Zero(c.key), index); err != nil {
		return err
	}
	c.cells[index] = nil
	return nil
}
