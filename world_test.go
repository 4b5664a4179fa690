package axle

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/TheBitDrifter/table"
)

func TestWorldsAreIndependent(t *testing.T) {
	a := Factory.NewWorld()
	b := Factory.NewWorld()

	RegisterComponent[Position](a)
	a.CreateEntity().WithComponent(Position{X: 1})
	AddResource(a, FrameTiming{Frame: 7})
	a.CreateSystem("render")

	if b.Entities().Len() != 0 {
		t.Errorf("second world has %d entities", b.Entities().Len())
	}
	if _, ok := b.Entities().Bitmask(KeyOf[Position]()); ok {
		t.Errorf("registration leaked into second world")
	}
	if _, ok := GetResource[FrameTiming](b); ok {
		t.Errorf("resource leaked into second world")
	}
	if _, err := b.System("render"); err == nil {
		t.Errorf("system leaked into second world")
	}

	// Registering in a different order gives each world its own bits
	RegisterComponent[Velocity](b)
	RegisterComponent[Position](b)
	if _, err := b.CreateEntity().WithComponent(Position{}); err != nil {
		t.Errorf("WithComponent() in second world error = %v", err)
	}
}

func TestWorldScenario(t *testing.T) {
	w := newTestWorld(t)
	AddResource(w, FrameTiming{Delta: 0.5})

	w.CreateEntity().WithComponents(Position{}, Velocity{X: 2, Y: 4})
	w.CreateEntity().WithComponents(Position{X: 10})
	w.CreateEntity().WithComponents(Position{}, Velocity{X: -2}, Health{Current: 1, Max: 1})

	w.CreateSystem("movement")
	WithComponentInSystem[Position](w, "movement")
	WithComponentInSystem[Velocity](w, "movement")
	WithResourceInSystem[FrameTiming](w, "movement")

	for tick := 0; tick < 2; tick++ {
		timing, ok := GetResource[FrameTiming](w)
		if !ok {
			t.Fatal("FrameTiming missing")
		}
		q, err := w.QueryForSystem("movement")
		if err != nil {
			t.Fatalf("QueryForSystem() error = %v", err)
		}
		for _, h := range q.RunEntity() {
			pos, err := EntityComponentMut[Position](h)
			if err != nil {
				t.Fatalf("EntityComponentMut() error = %v", err)
			}
			vel, err := EntityComponent[Velocity](h)
			if err != nil {
				t.Fatalf("EntityComponent() error = %v", err)
			}
			pos.Get().X += vel.Get().X * timing.Delta
			pos.Get().Y += vel.Get().Y * timing.Delta
			vel.Release()
			pos.Release()
		}
		frame, _ := GetResourceMut[FrameTiming](w)
		frame.Frame++
	}

	want := []Position{{X: 2, Y: 4}, {X: 10}, {X: -2}}
	for i, p := range want {
		got, err := GetComponent[Position](w.Entities(), i)
		if err != nil {
			t.Fatalf("GetComponent(%d) error = %v", i, err)
		}
		if got.Get() != p {
			t.Errorf("entity %d Position = %+v, want %+v", i, got.Get(), p)
		}
		got.Release()
	}
	if timing, _ := GetResource[FrameTiming](w); timing.Frame != 2 {
		t.Errorf("Frame = %d, want 2", timing.Frame)
	}
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	Config.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer Config.SetLogger(nil)

	w := Factory.NewWorld()
	RegisterComponent[Position](w)
	w.CreateSystem("render")
	w.CreateSystem("render")

	out := buf.String()
	if !strings.Contains(out, "component registered") {
		t.Errorf("registration not logged: %q", out)
	}
	if !strings.Contains(out, "system declaration reset") {
		t.Errorf("system reset not logged: %q", out)
	}
	if Config.Logger() == nil {
		t.Errorf("Logger() returned nil")
	}
}

type countingEvents struct {
	created int
}

func (c *countingEvents) OnBeforeEntriesCreated(count int) error { return nil }
func (c *countingEvents) OnAfterEntriesCreated(entries []table.Entry) {
	c.created += len(entries)
}
func (c *countingEvents) OnBeforeEntriesDeleted(indices []int) error { return nil }
func (c *countingEvents) OnAfterEntriesDeleted(ids []table.EntryID)  {}

func TestConfigTableEvents(t *testing.T) {
	events := &countingEvents{}
	Config.SetTableEvents(events)
	defer Config.SetTableEvents(nil)

	w := Factory.NewWorld()
	RegisterComponent[Position](w)
	for i := 0; i < 3; i++ {
		if err := w.CreateEntity().WithComponents(Position{}); err != nil {
			t.Fatalf("Failed to create entity: %v", err)
		}
	}
	if events.created != 3 {
		t.Errorf("column reported %d created rows, want 3", events.created)
	}
}
