package axle

import (
	"io"
	"log/slog"

	"github.com/TheBitDrifter/table"
)

// Config holds global configuration for the axle core
var Config config = config{
	logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	systemCapacity: 256,
}

type config struct {
	logger         *slog.Logger
	systemCapacity int
	tableEvents    table.TableEvents
}

// SetLogger configures the logger used for registry and lifecycle events.
// A nil logger restores the default, which discards everything.
func (c *config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger = logger
}

func (c *config) Logger() *slog.Logger {
	return c.logger
}

// SetSystemCapacity bounds the number of named systems a World created
// afterwards can hold.
func (c *config) SetSystemCapacity(n int) {
	c.systemCapacity = n
}

func (c *config) SystemCapacity() int {
	return c.systemCapacity
}

// SetTableEvents installs hooks on the column tables of components
// registered afterwards. Each column reports its own row creation.
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}
