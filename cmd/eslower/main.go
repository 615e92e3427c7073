// Package main implements the eslower CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MadAppGang/eslower/pkg/config"
	"github.com/MadAppGang/eslower/pkg/lower"
	"github.com/MadAppGang/eslower/pkg/pass"
	"github.com/MadAppGang/eslower/pkg/sourcemap"
	"github.com/MadAppGang/eslower/pkg/span"
	"github.com/MadAppGang/eslower/pkg/ui"
)

var version = "0.1.0"

func main() {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "eslower",
		Short: "eslower - an ECMAScript lowering toolchain core",
		Long: `eslower lowers modern ECMAScript syntax to older dialects.
It owns the source position and hygiene model, the visitor/folder
protocol over the AST, and the desugaring passes; parsing and code
generation plug in as collaborators.`,
		Version:      version,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintHeader(version)
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to eslower.toml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(lowerCmd(&configPath, &verbose))
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(passesCmd(&configPath))
	rootCmd.AddCommand(sourcemapCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string, loose bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if loose {
		cfg.Passes.Loose = true
	}
	return cfg, nil
}

func newLogger(verbose bool) pass.Logger {
	l := logrus.New()
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return pass.NewLogrusLogger(l)
}

func lowerCmd(configPath *string, verbose *bool) *cobra.Command {
	var loose bool

	cmd := &cobra.Command{
		Use:   "lower [file.js]",
		Short: "Run the lowering pipeline over a source file",
		Long: `Lower runs the configured pass pipeline over a parsed source file.
A parser collaborator must be linked into the build; this distribution
carries only the lowering core.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, loose)
			if err != nil {
				return err
			}

			session, err := lower.NewSession(cfg)
			if err != nil {
				return err
			}
			session.SetLogger(newLogger(*verbose))

			_, err = session.LowerFile(nil, args[0], nil)
			if err != nil {
				ui.Error("%v", err)
				ui.Muted("link a parser collaborator and drive the session through pkg/lower")
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&loose, "loose", false, "loose-mode lowering (skip array-conversion helpers)")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file.js...]",
		Short: "Load files into the source registry and print their analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm := span.NewSourceMap()
			for _, path := range args {
				f, err := cm.LoadFile(path)
				if err != nil {
					return err
				}
				ui.Section(f.Name.String())
				ui.Muted("  interval   [%d, %d)", f.StartPos, f.EndPos)
				ui.Muted("  lines      %d", f.CountLines())
				ui.Muted("  multibyte  %d", len(f.MultibyteChars))
				ui.Muted("  non-narrow %d", len(f.NonNarrowChars))
				ui.Muted("  src hash   %016x%016x", f.SrcHash.Hi, f.SrcHash.Lo)
			}
			ui.Success("loaded %d file(s)", len(args))
			return nil
		},
	}
}

func passesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the registered lowering passes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, false)
			if err != nil {
				return err
			}
			session, err := lower.NewSession(cfg)
			if err != nil {
				return err
			}

			stats, err := session.Stats()
			if err != nil {
				return err
			}

			ui.Section("Registered passes")
			enabled := make(map[string]bool, len(stats.ExecutionOrder))
			for _, name := range stats.ExecutionOrder {
				enabled[name] = true
			}
			for _, name := range stats.PassNames {
				state := "disabled"
				if enabled[name] {
					state = "enabled"
				}
				ui.Muted("  %-24s %s", name, state)
			}
			ui.Muted("execution order: %v", stats.ExecutionOrder)
			return nil
		},
	}
}

func sourcemapCmd() *cobra.Command {
	var (
		sources []string
		strict  bool
	)

	validate := &cobra.Command{
		Use:   "validate [map] [generated]",
		Short: "Validate a generated source map against its sources",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm := span.NewSourceMap()
			for _, src := range sources {
				if _, err := cm.LoadFile(src); err != nil {
					return err
				}
			}

			v, err := sourcemap.NewValidatorFromFile(args[0], cm)
			if err != nil {
				return err
			}
			v.SetStrict(strict)

			generated, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read generated file: %w", err)
			}

			result := v.Validate(string(generated))
			for _, e := range result.Errors {
				ui.Error("%s: %s", e.Type, e.Message)
			}
			for _, w := range result.Warnings {
				ui.Warning("%s: %s", w.Type, w.Message)
			}
			if !result.Valid {
				return fmt.Errorf("source map is invalid (%d errors)", len(result.Errors))
			}
			ui.Success("source map valid: %d mapped positions, %.1f%% accuracy",
				result.MappedPositions, result.Accuracy)
			return nil
		},
	}
	validate.Flags().StringSliceVar(&sources, "source", nil, "original source files to check against")
	validate.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	cmd := &cobra.Command{
		Use:   "sourcemap",
		Short: "Source map utilities",
	}
	cmd.AddCommand(validate)
	return cmd
}
