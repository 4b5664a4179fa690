package axle

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ iCursor = &Cursor{}

// Cursor walks the entities matched by a query one at a time. The entity
// table stays locked from the first step until the cursor is exhausted or
// reset; structural changes made through the Enqueue methods in between are
// applied on release.
type Cursor struct {
	query *Query

	matched  []int
	position int

	initialized bool
	err         error
}

func newCursor(query *Query) *Cursor {
	return &Cursor{query: query}
}

func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	if c.position < len(c.matched) {
		c.position++
		return true
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq2[int, QueryEntity] {
	return func(yield func(int, QueryEntity) bool) {
		c.initialize()
		for c.position < len(c.matched) {
			index := c.matched[c.position]
			c.position++
			if !yield(index, newQueryEntity(index, c.query.entities)) {
				c.Reset()
				return
			}
		}
		c.Reset()
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.query.entities.lockCursor()
	c.matched = iter_util.Collect(c.query.Indexes())
	c.position = 0
	c.initialized = true
}

// Reset releases the lock and rewinds the cursor. Any error from applying
// queued operations is kept for Err.
func (c *Cursor) Reset() {
	if !c.initialized {
		return
	}
	c.matched = nil
	c.position = 0
	c.initialized = false
	if err := c.query.entities.unlockCursor(); err != nil {
		c.err = err
	}
}

// Err returns the first error raised while applying queued operations on
// release.
func (c *Cursor) Err() error {
	return c.err
}

// CurrentEntity returns the entity the last call to Next moved to.
func (c *Cursor) CurrentEntity() QueryEntity {
	return newQueryEntity(c.Index(), c.query.entities)
}

func (c *Cursor) Index() int {
	if c.position == 0 || c.position > len(c.matched) {
		return -1
	}
	return c.matched[c.position-1]
}

func (c *Cursor) Remaining() int {
	return len(c.matched) - c.position
}

func (c *Cursor) TotalMatched() int {
	if c.initialized {
		return len(c.matched)
	}
	total := 0
	for range c.query.Indexes() {
		total++
	}
	return total
}
