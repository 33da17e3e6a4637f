// Package renderer provides a way to render mapping reports in different formats.
package renderer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ChainSafe/pmevo-compat/mapper"
)

// TextRenderer formats the mapping report in a structured text format.
type TextRenderer struct {
	arch    string
	profile string
}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer(arch, profile string) Renderer {
	return &TextRenderer{arch: arch, profile: profile}
}

// Render formats and writes the mapping report.
func (r *TextRenderer) Render(report *mapper.Report, output io.Writer) error {
	// Sort misses by name for consistent output
	misses := slices.Clone(report.Misses)
	slices.SortFunc(misses, func(a, b mapper.Miss) int {
		return strings.Compare(a.Name, b.Name)
	})

	var b strings.Builder

	// Header Section
	b.WriteString("==============================\n")
	b.WriteString("🔍 Instruction Mapping Report\n")
	b.WriteString("==============================\n\n")
	b.WriteString(fmt.Sprintf("🖥 Architecture: %s\n", r.arch))
	b.WriteString(fmt.Sprintf("⚙️ Rule Profile: %s\n\n", r.profile))
	b.WriteString("------------------------------\n")
	b.WriteString("📊 Summary\n")
	b.WriteString("------------------------------\n")
	b.WriteString(fmt.Sprintf(" ✅ Mapped: %d\n", report.Mapped))
	b.WriteString(fmt.Sprintf(" ❗ Unmapped: %d\n", report.Unmapped))
	b.WriteString(fmt.Sprintf("ℹ️ Target Instructions: %d\n", report.Targets))
	b.WriteString(fmt.Sprintf("ℹ️ Reference Instructions: %d\n", report.Reference))
	b.WriteString(fmt.Sprintf("ℹ️ Reference Key Collisions: %d\n\n", report.Collisions))

	if len(misses) > 0 {
		b.WriteString("------------------------------\n")
		b.WriteString("📌 Unmapped Instructions\n")
		b.WriteString("------------------------------\n\n")
		for i, miss := range misses {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, miss.Name))
			b.WriteString(fmt.Sprintf("   - Key: %s\n", miss.Key))
		}
		b.WriteString("\n")
	}
	b.WriteString("🔚 End of Report\n")

	_, err := io.WriteString(output, b.String())
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
