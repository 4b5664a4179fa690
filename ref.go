package axle

// Ref is a shared borrow of a component value. Release it when done;
// until then no exclusive borrow of the same cell can be taken.
type Ref[T any] struct {
	cell *Cell
}

// Get returns a copy of the borrowed value. It panics with
// BorrowReleasedError once the borrow has been released.
func (r *Ref[T]) Get() T {
	if r.cell == nil {
		panic(BorrowReleasedError{Key: KeyOf[T]()})
	}
	return *pointerTo[T](r.cell)
}

// Release gives the borrow back. Further calls do nothing.
func (r *Ref[T]) Release() {
	if r.cell == nil {
		return
	}
	r.cell.release()
	r.cell = nil
}

// RefMut is an exclusive borrow of a component value. While it is held no
// other borrow of the same cell succeeds.
type RefMut[T any] struct {
	cell *Cell
}

// Get returns a pointer to the stored value, or nil once the borrow has
// been released. The pointer dies at Release and must not be kept across
// entity creation, which may move the column storage.
func (r *RefMut[T]) Get() *T {
	if r.cell == nil {
		return nil
	}
	return pointerTo[T](r.cell)
}

// Set overwrites the stored value. A released borrow returns
// BorrowReleasedError and writes nothing.
func (r *RefMut[T]) Set(value T) error {
	if r.cell == nil {
		return BorrowReleasedError{Key: KeyOf[T]()}
	}
	*pointerTo[T](r.cell) = value
	return nil
}

// Release gives the borrow back. Further calls do nothing.
func (r *RefMut[T]) Release() {
	if r.cell == nil {
		return
	}
	r.cell.releaseExclusive()
	r.cell = nil
}

// Borrow takes a shared borrow of the cell as a T.
func Borrow[T any](c *Cell) (*Ref[T], error) {
	if err := checkType[T](c); err != nil {
		return nil, err
	}
	if err := c.acquire(); err != nil {
		return nil, err
	}
	return &Ref[T]{cell: c}, nil
}

// BorrowMut takes an exclusive borrow of the cell as a T.
func BorrowMut[T any](c *Cell) (*RefMut[T], error) {
	if err := checkType[T](c); err != nil {
		return nil, err
	}
	if err := c.acquireExclusive(); err != nil {
		return nil, err
	}
	return &RefMut[T]{cell: c}, nil
}
