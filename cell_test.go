package axle

import (
	"errors"
	"testing"
)

func TestBorrowDiscipline(t *testing.T) {
	type borrow struct {
		exclusive bool
		wantError bool
	}

	tests := []struct {
		name    string
		borrows []borrow
	}{
		{"Many readers", []borrow{{false, false}, {false, false}, {false, false}}},
		{"Single writer", []borrow{{true, false}}},
		{"Second writer", []borrow{{true, false}, {true, true}}},
		{"Reader then writer", []borrow{{false, false}, {true, true}}},
		{"Writer then reader", []borrow{{true, false}, {false, true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			if err := w.CreateEntity().WithComponents(Health{Current: 10, Max: 10}); err != nil {
				t.Fatalf("Failed to create entity: %v", err)
			}

			var releases []func()
			defer func() {
				for _, release := range releases {
					release()
				}
			}()

			for i, b := range tt.borrows {
				var err error
				if b.exclusive {
					var ref *RefMut[Health]
					ref, err = GetComponentMut[Health](w.Entities(), 0)
					if ref != nil {
						releases = append(releases, ref.Release)
					}
				} else {
					var ref *Ref[Health]
					ref, err = GetComponent[Health](w.Entities(), 0)
					if ref != nil {
						releases = append(releases, ref.Release)
					}
				}

				var conflict BorrowConflictError
				gotConflict := errors.As(err, &conflict)
				if gotConflict != b.wantError {
					t.Fatalf("borrow %d: error = %v, wantError %v", i, err, b.wantError)
				}
				if gotConflict && conflict.Exclusive != b.exclusive {
					t.Errorf("borrow %d: conflict.Exclusive = %v, want %v", i, conflict.Exclusive, b.exclusive)
				}
			}
		})
	}
}

func TestBorrowRelease(t *testing.T) {
	w := newTestWorld(t)
	if err := w.CreateEntity().WithComponents(Position{X: 1, Y: 2}); err != nil {
		t.Fatalf("Failed to create entity: %v", err)
	}
	entities := w.Entities()

	first, err := GetComponentMut[Position](entities, 0)
	if err != nil {
		t.Fatalf("GetComponentMut() error = %v", err)
	}
	first.Get().X = 5
	first.Release()
	// Releasing twice must not free someone else's borrow
	first.Release()

	reader, err := GetComponent[Position](entities, 0)
	if err != nil {
		t.Fatalf("GetComponent() after release error = %v", err)
	}
	if reader.Get().X != 5 {
		t.Errorf("Position.X = %v, want 5", reader.Get().X)
	}
	reader.Release()
	reader.Release()

	second, err := GetComponentMut[Position](entities, 0)
	if err != nil {
		t.Fatalf("second GetComponentMut() error = %v", err)
	}
	if err := second.Set(Position{X: 9, Y: 9}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	second.Release()

	col, _ := entities.Column(KeyOf[Position]())
	if col.Cell(0).Borrowed() {
		t.Errorf("cell still borrowed after every borrow was released")
	}
	reader, _ = GetComponent[Position](entities, 0)
	defer reader.Release()
	if got := reader.Get(); got != (Position{X: 9, Y: 9}) {
		t.Errorf("Position = %+v, want {9 9}", got)
	}
}

func TestBorrowIsPerCell(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < 2; i++ {
		if err := w.CreateEntity().WithComponents(Position{}, Velocity{}); err != nil {
			t.Fatalf("Failed to create entity: %v", err)
		}
	}
	entities := w.Entities()

	held, err := GetComponentMut[Position](entities, 0)
	if err != nil {
		t.Fatalf("GetComponentMut() error = %v", err)
	}
	defer held.Release()

	other, err := GetComponentMut[Position](entities, 1)
	if err != nil {
		t.Errorf("borrowing another entity's cell: %v", err)
	} else {
		other.Release()
	}

	vel, err := GetComponentMut[Velocity](entities, 0)
	if err != nil {
		t.Errorf("borrowing another column of the same entity: %v", err)
	} else {
		vel.Release()
	}
}

func TestBorrowWrongType(t *testing.T) {
	w := newTestWorld(t)
	if err := w.CreateEntity().WithComponents(Velocity{X: 1}); err != nil {
		t.Fatalf("Failed to create entity: %v", err)
	}
	col, _ := w.Entities().Column(KeyOf[Velocity]())

	_, err := BorrowMut[Position](col.Cell(0))
	if !errors.As(err, new(DowncastToWrongTypeError)) {
		t.Errorf("BorrowMut[Position]() error = %v, want DowncastToWrongTypeError", err)
	}
	if col.Cell(0).Borrowed() {
		t.Errorf("failed downcast left the cell borrowed")
	}
}

func TestReleasedBorrowIsInert(t *testing.T) {
	w := newTestWorld(t)
	if err := w.CreateEntity().WithComponents(Health{Current: 5, Max: 5}); err != nil {
		t.Fatalf("Failed to create entity: %v", err)
	}
	entities := w.Entities()

	stale, err := GetComponentMut[Health](entities, 0)
	if err != nil {
		t.Fatalf("GetComponentMut() error = %v", err)
	}
	stale.Release()

	live, err := GetComponentMut[Health](entities, 0)
	if err != nil {
		t.Fatalf("GetComponentMut() after release error = %v", err)
	}
	defer live.Release()

	if err := stale.Set(Health{Current: 666}); !errors.As(err, new(BorrowReleasedError)) {
		t.Errorf("Set() on released borrow error = %v, want BorrowReleasedError", err)
	}
	if p := stale.Get(); p != nil {
		t.Errorf("Get() on released borrow = %+v, want nil", *p)
	}
	if got := live.Get().Current; got != 5 {
		t.Errorf("live borrow sees Current = %d, want 5", got)
	}

	t.Run("Shared", func(t *testing.T) {
		reader := &Ref[Health]{}
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Get() on released shared borrow did not panic")
			} else if _, ok := r.(BorrowReleasedError); !ok {
				t.Errorf("panic value = %v, want BorrowReleasedError", r)
			}
		}()
		reader.Get()
	})
}

func TestBorrowSurvivesColumnGrowth(t *testing.T) {
	w := newTestWorld(t)
	if err := w.CreateEntity().WithComponents(Position{X: 1}); err != nil {
		t.Fatalf("Failed to create entity: %v", err)
	}
	entities := w.Entities()

	held, err := GetComponentMut[Position](entities, 0)
	if err != nil {
		t.Fatalf("GetComponentMut() error = %v", err)
	}
	for i := 0; i < 64; i++ {
		if err := w.CreateEntity().WithComponents(Position{X: float64(i)}); err != nil {
			t.Fatalf("Failed to create entity: %v", err)
		}
	}
	held.Get().X = 3
	held.Release()

	got, err := GetComponent[Position](entities, 0)
	if err != nil {
		t.Fatalf("GetComponent() error = %v", err)
	}
	defer got.Release()
	if got.Get().X != 3 {
		t.Errorf("Position.X = %v, want 3", got.Get().X)
	}
}
