// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/ChainSafe/pmevo-compat/canonical"
	"github.com/ChainSafe/pmevo-compat/pmevo"
	"github.com/ChainSafe/pmevo-compat/profile"
	"github.com/ChainSafe/pmevo-compat/targetlist"
)

var (
	DataRootFlag = &cli.PathFlag{
		Name:    "data-root",
		Usage:   "Directory containing one <arch>/mapping_pmevo.json per architecture",
		EnvVars: []string{"PMEVO_DATA_ROOT"},
		Value:   pmevo.DefaultDataRoot,
	}
	ArchFlag = &cli.StringFlag{
		Name:     "arch",
		Usage:    "Architecture to load. Ex: SKL",
		Required: true,
	}
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to a YAML operand rewrite profile. Default: built-in rules",
		Required: false,
	}
	ConventionFlag = &cli.StringFlag{
		Name:  "convention",
		Usage: "Naming convention of the instruction names. Options: reference, target",
		Value: "reference",
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level. Options: debug, info, warn, error",
		EnvVars: []string{"PMEVO_LOG_LEVEL"},
		Value:   "info",
	}
)

// SetupLogging installs the default slog logger according to LogLevelFlag.
func SetupLogging(ctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(ctx.String(LogLevelFlag.Name))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	handler := slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func loadProfile(ctx *cli.Context) (*profile.Profile, error) {
	path := ctx.Path(ProfileFlag.Name)
	if path == "" {
		return profile.Default(), nil
	}
	prof, err := profile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return prof, nil
}

func loadEvaluator(ctx *cli.Context, prof *profile.Profile) (*pmevo.Evaluator[targetlist.Instruction], error) {
	return pmevo.New[targetlist.Instruction](
		ctx.String(ArchFlag.Name),
		pmevo.WithDataRoot(ctx.Path(DataRootFlag.Name)),
		pmevo.WithProfile(prof),
		pmevo.WithLogger(slog.Default()),
	)
}

func convention(ctx *cli.Context) (canonical.Convention, error) {
	return canonical.ParseConvention(ctx.String(ConventionFlag.Name))
}
