// Profiling:
// go build ./profile/query
// ./query -mode=cpu
// go tool pprof -http=":8000" ./query cpu.pprof

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/TheBitDrifter/axle"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type sprite struct {
	ID int
}

func main() {
	mode := flag.String("mode", "cpu", "profile to record: cpu or mem")
	rounds := flag.Int("rounds", 20, "worlds to build")
	iters := flag.Int("iters", 200, "query passes per world")
	entities := flag.Int("entities", 20000, "entities per world")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var p interface{ Stop() }
	switch *mode {
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		logger.Error("unknown profile mode", "mode", *mode)
		os.Exit(2)
	}

	if err := run(*rounds, *iters, *entities); err != nil {
		p.Stop()
		logger.Error("profiling run failed", "err", err)
		os.Exit(1)
	}
	p.Stop()
}

func run(rounds, iters, numEntities int) error {
	for range rounds {
		w := axle.NewWorld()
		pos := axle.FactoryNewComponent[position]()
		vel := axle.FactoryNewComponent[velocity]()
		spr := axle.FactoryNewComponent[sprite]()
		for _, register := range []func(*axle.World) (uint32, error){pos.Register, vel.Register, spr.Register} {
			if _, err := register(w); err != nil {
				return err
			}
		}

		for i := range numEntities {
			values := []any{position{}, velocity{X: 1, Y: 1}}
			if i%3 == 0 {
				values = append(values, sprite{ID: i})
			}
			if err := w.CreateEntity().WithComponents(values...); err != nil {
				return err
			}
		}

		query, err := w.Query().With(pos, vel)
		if err != nil {
			return err
		}
		for range iters {
			for _, h := range query.RunEntity() {
				p, err := pos.GetMutFromEntity(h)
				if err != nil {
					return err
				}
				v, err := vel.GetFromEntity(h)
				if err != nil {
					p.Release()
					return err
				}
				p.Get().X += v.Get().X
				p.Get().Y += v.Get().Y
				v.Release()
				p.Release()
			}
		}
	}
	return nil
}
