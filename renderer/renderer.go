package renderer

import (
	"io"

	"github.com/ChainSafe/pmevo-compat/mapper"
)

// Renderer defines the interface for rendering mapping reports in different formats.
type Renderer interface {
	// Render takes a mapping report and outputs it in the desired format to the provided writer.
	Render(report *mapper.Report, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}
