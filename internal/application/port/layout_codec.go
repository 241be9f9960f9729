package port

import (
	"io"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// LayoutCodec encodes layout configurations in one file format.
type LayoutCodec interface {
	// Format returns the format name, e.g. "json".
	Format() string

	// Encode writes cfg to w.
	Encode(w io.Writer, cfg layout.Config) error

	// Decode reads one configuration from r.
	Decode(r io.Reader) (layout.Config, error)
}
