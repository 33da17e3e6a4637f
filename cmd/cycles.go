package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/pmevo-compat/canonical"
	"github.com/ChainSafe/pmevo-compat/mapping"
	"github.com/ChainSafe/pmevo-compat/pmevo"
	"github.com/ChainSafe/pmevo-compat/targetlist"
)

func CreateCyclesCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "cycles",
		Usage:       "Computes cycles and IPC of an instruction sequence",
		Description: "Computes the steady-state cycles and IPC of one iteration of the given instructions",
		ArgsUsage:   "NAME...",
		Action:      action,
		Flags: []cli.Flag{
			DataRootFlag,
			ArchFlag,
			ProfileFlag,
			ConventionFlag,
		},
	}
}

var CyclesCommand = CreateCyclesCommand(ComputeCycles)

func ComputeCycles(ctx *cli.Context) error {
	names := ctx.Args().Slice()
	if len(names) == 0 {
		return errors.New("expected at least one instruction name")
	}
	conv, err := convention(ctx)
	if err != nil {
		return err
	}
	prof, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	evaluator, err := loadEvaluator(ctx, prof)
	if err != nil {
		return err
	}

	insns, err := resolve(evaluator, conv, names)
	if err != nil {
		return err
	}
	throughput, err := evaluator.ThroughputFor(insns)
	if err != nil {
		return fmt.Errorf("error computing throughput: %w", err)
	}

	_, err = fmt.Fprintf(ctx.App.Writer, "cycles: %.2f\nipc: %.2f\n", throughput.Cycles, throughput.IPC)
	return err
}

// resolve turns instruction names into reference instructions. Target names
// are mapped first; a target without counterpart is an error here.
func resolve(
	evaluator *pmevo.Evaluator[targetlist.Instruction],
	conv canonical.Convention,
	names []string,
) ([]*mapping.Instruction, error) {
	insns := make([]*mapping.Instruction, 0, len(names))
	if conv == canonical.Reference {
		for _, name := range names {
			insn, ok := evaluator.Mapping().Lookup(name)
			if !ok {
				return nil, fmt.Errorf("unknown reference instruction: %s", name)
			}
			insns = append(insns, insn)
		}
		return insns, nil
	}

	targets := make([]targetlist.Instruction, len(names))
	for i, name := range names {
		targets[i] = targetlist.Instruction(name)
	}
	mapped := evaluator.MapInstructions(targets)
	for _, target := range targets {
		insn := mapped[target]
		if insn == nil {
			return nil, fmt.Errorf("no reference instruction for %s (key %s)", target, evaluator.TargetKey(target.Name()))
		}
		insns = append(insns, insn)
	}
	return insns, nil
}
