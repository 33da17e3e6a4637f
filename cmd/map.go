package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/pmevo-compat/mapper"
	"github.com/ChainSafe/pmevo-compat/renderer"
	"github.com/ChainSafe/pmevo-compat/targetlist"
)

var (
	FormatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "format of the output. Options: json, text, table",
		Value: "text",
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:     "report-output-path",
		Usage:    "output file path for report. Default: stdout",
		Required: false,
	}
)

func CreateMapCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "map",
		Usage:       "Maps target instruction names onto the architecture's reference instructions",
		Description: "Reads target instruction names, one per line, and reports which have a reference counterpart",
		ArgsUsage:   "TARGETS_FILE",
		Action:      action,
		Flags: []cli.Flag{
			DataRootFlag,
			ArchFlag,
			ProfileFlag,
			FormatFlag,
			ReportOutputPathFlag,
		},
	}
}

var MapCommand = CreateMapCommand(MapInstructions)

func MapInstructions(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one target instruction list")
	}
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	targets, err := targetlist.ReadFile(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("error reading target instructions: %w", err)
	}
	evaluator, err := loadEvaluator(ctx, prof)
	if err != nil {
		return err
	}

	evaluator.MapInstructions(targets)
	report, _ := evaluator.Report()

	var rendererInstance renderer.Renderer
	switch format := ctx.String(FormatFlag.Name); format {
	case "text":
		rendererInstance = renderer.NewTextRenderer(evaluator.Arch(), prof.Name)
	case "json":
		rendererInstance = renderer.NewJSONRenderer(evaluator.Arch(), prof.Name)
	case "table":
		rendererInstance = renderer.NewTableRenderer(evaluator.Arch(), prof.Name)
	default:
		return fmt.Errorf("invalid format: %s", format)
	}

	if err := writeReport(rendererInstance, report, ctx.Path(ReportOutputPathFlag.Name), ctx.App.Writer); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return nil
}

// writeReport outputs the report to outputPath, or to stdout when it is empty.
func writeReport(r renderer.Renderer, report *mapper.Report, outputPath string, stdout io.Writer) error {
	if outputPath == "" {
		return r.Render(report, stdout)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("unable to determine absolute path: %w", err)
	}
	output, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to open output file: %w", err)
	}
	defer func() {
		_ = output.Close()
	}()
	return r.Render(report, output)
}
