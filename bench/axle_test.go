package bench

import (
	"testing"

	"github.com/TheBitDrifter/axle"
)

// go test -bench=. ./bench -benchmem

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

func setupAxle(b *testing.B) (*axle.World, axle.AccessibleComponent[Position], axle.AccessibleComponent[Velocity]) {
	b.Helper()
	world := axle.Factory.NewWorld()
	position := axle.FactoryNewComponent[Position]()
	velocity := axle.FactoryNewComponent[Velocity]()
	position.Register(world)
	velocity.Register(world)

	for i := 0; i < nPosVel; i++ {
		world.CreateEntity().WithComponents(Position{}, Velocity{X: 1, Y: 1})
	}
	for i := 0; i < nPos; i++ {
		world.CreateEntity().WithComponents(Position{})
	}
	return world, position, velocity
}

func BenchmarkIterAxleCursor(b *testing.B) {
	b.StopTimer()
	world, position, velocity := setupAxle(b)
	query, _ := world.Query().With(velocity, position)
	cursor := axle.Factory.NewCursor(query)
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for cursor.Next() {
			pos, _ := position.GetMutFromCursor(cursor)
			vel, _ := velocity.GetFromCursor(cursor)

			pos.Get().X += vel.Get().X
			pos.Get().Y += vel.Get().Y

			vel.Release()
			pos.Release()
		}
	}
}

func BenchmarkIterAxleRun(b *testing.B) {
	b.StopTimer()
	world, position, velocity := setupAxle(b)
	query, _ := world.Query().With(position, velocity)
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		indexes, columns := query.Run()
		for row := range indexes {
			pos, _ := axle.BorrowMut[Position](columns[0][row])
			vel, _ := axle.Borrow[Velocity](columns[1][row])

			pos.Get().X += vel.Get().X
			pos.Get().Y += vel.Get().Y

			vel.Release()
			pos.Release()
		}
	}
}
