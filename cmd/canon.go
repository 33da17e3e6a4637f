package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/pmevo-compat/canonical"
)

func CreateCanonCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "canon",
		Usage:       "Prints the canonical key of instruction names",
		Description: "Prints the canonical key of instruction names, to debug rewrite rules",
		ArgsUsage:   "NAME...",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			ConventionFlag,
		},
	}
}

var CanonCommand = CreateCanonCommand(Canonicalize)

func Canonicalize(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
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

	rules, err := prof.ReferenceRules()
	if conv == canonical.Target {
		rules, err = prof.TargetRules()
	}
	if err != nil {
		return err
	}

	c := canonical.New(conv, rules)
	for _, name := range ctx.Args().Slice() {
		if _, err := fmt.Fprintf(ctx.App.Writer, "%s -> %s\n", name, c.Key(name)); err != nil {
			return err
		}
	}
	return nil
}
