package renderer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ChainSafe/pmevo-compat/mapper"
)

// TableRenderer renders mapping reports as boxed tables.
type TableRenderer struct {
	arch    string
	profile string
}

func NewTableRenderer(arch, profile string) Renderer {
	return &TableRenderer{arch: arch, profile: profile}
}

func (r *TableRenderer) Render(report *mapper.Report, output io.Writer) error {
	summary := table.NewWriter()
	summary.SetTitle(fmt.Sprintf("Instruction Mapping: %s (%s)", r.arch, r.profile))
	summary.AppendHeader(table.Row{"Targets", "Mapped", "Unmapped", "Reference", "Collisions"})
	summary.AppendRow(table.Row{report.Targets, report.Mapped, report.Unmapped, report.Reference, report.Collisions})

	var b strings.Builder
	b.WriteString(summary.Render())
	b.WriteString("\n")

	if len(report.Misses) > 0 {
		misses := slices.Clone(report.Misses)
		slices.SortFunc(misses, func(a, b mapper.Miss) int {
			return strings.Compare(a.Name, b.Name)
		})

		missTable := table.NewWriter()
		missTable.SetTitle("Unmapped Instructions")
		missTable.AppendHeader(table.Row{"#", "Instruction", "Mnemonic", "Operands"})
		for i, miss := range misses {
			missTable.AppendRow(table.Row{i + 1, miss.Name, miss.Key.Mnemonic(), strings.Join(miss.Key.Operands(), " ")})
		}
		b.WriteString("\n")
		b.WriteString(missTable.Render())
		b.WriteString("\n")
	}

	_, err := io.WriteString(output, b.String())
	return err
}

func (r *TableRenderer) Format() string {
	return "table"
}
