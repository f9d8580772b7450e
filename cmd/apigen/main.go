// Command apigen is the collaborator CLI around the parser/analyzer/render
// pipeline (spec.md §6.3): it reads one IDL source, analyzes it into a
// Document, and renders that Document in one of five target languages.
//
// The core packages (parser, analyzer, render/*) are a pure function of
// their input and never log; this command is the one place in the module
// that talks to the filesystem and to a human, so it is also the one
// place that reaches for go.uber.org/zap (structured CLI diagnostics) and
// github.com/spf13/cobra (flag parsing), the way miaomiao1992-dingo's
// cmd/dingo wires a compiler pipeline into a cobra command tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/apigen/apigen/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin *os.File, stdout *os.File) int {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var opts options
	var testModeFlag string

	root := &cobra.Command{
		Use:           "apigen <input>",
		Short:         "Generate an ABI binding from an IDL source file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]

			projectCfg, err := config.Load("apigen.toml")
			if err != nil {
				logger.Warn("failed to load apigen.toml, continuing with flag defaults", zap.Error(err))
			}
			if opts.language == "" {
				opts.language = projectCfg.Language
			}
			if opts.output == "" {
				opts.output = projectCfg.Output
			}
			if !cmd.Flags().Changed("implementation") {
				opts.implementation = projectCfg.Implementation
			}
			if opts.language == "" {
				opts.language = "c"
			}

			mode := testMode(testModeFlag)
			if mode != testModeDisabled && mode != testModeParser && mode != testModeAnalyzer {
				return fmt.Errorf("invalid --test-mode %q (want disabled, parser, or analyzer)", testModeFlag)
			}

			if mode != testModeDisabled {
				return runTestModeCommand(opts, mode, stdin, logger)
			}
			return runCompileCommand(opts, stdin, stdout, logger)
		},
	}

	root.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (default: standard output)")
	root.Flags().StringVarP(&opts.language, "language", "l", "", "target language: c, c++, zig, rust, go (default: c)")
	root.Flags().BoolVarP(&opts.implementation, "implementation", "i", false, "also emit an implementation stub (C only)")
	root.Flags().StringVar(&testModeFlag, "test-mode", string(testModeDisabled), "disabled, parser, or analyzer")

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logger.Error("apigen failed", zap.Error(err))
		return 1
	}
	return 0
}

func runTestModeCommand(opts options, mode testMode, stdin *os.File, logger *zap.Logger) error {
	if isFixtureFile(opts.input) {
		return runFixtureFile(opts.input, mode)
	}
	file, src, err := readSource(opts, stdin)
	if err != nil {
		logger.Error("failed to read input", zap.Error(err))
		return err
	}
	return runTestMode(file, src, mode)
}

func runCompileCommand(opts options, stdin *os.File, stdout *os.File, logger *zap.Logger) error {
	file, src, err := readSource(opts, stdin)
	if err != nil {
		logger.Error("failed to read input", zap.Error(err))
		return err
	}

	result := compile(file, src)
	if result.doc == nil {
		for _, d := range result.sink.Diagnostics() {
			fmt.Fprintln(os.Stderr, d.String())
		}
		return fmt.Errorf("%s: analysis failed with %d diagnostic(s)", file, len(result.sink.Diagnostics()))
	}
	for _, d := range result.sink.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}

	body, implBody, err := render(result.doc, opts.language, opts.implementation, outputBaseName(opts.output))
	if err != nil {
		logger.Error("render failed", zap.String("language", opts.language), zap.Error(err))
		return err
	}

	if opts.output == "" {
		fmt.Fprint(stdout, body)
	} else if err := os.WriteFile(opts.output, []byte(body), 0o644); err != nil {
		logger.Error("failed to write output", zap.String("path", opts.output), zap.Error(err))
		return err
	}

	if opts.implementation && implBody != "" {
		implPath := implementationPath(opts.output)
		if implPath == "" {
			fmt.Fprint(stdout, implBody)
		} else if err := os.WriteFile(implPath, []byte(implBody), 0o644); err != nil {
			logger.Error("failed to write implementation stub", zap.String("path", implPath), zap.Error(err))
			return err
		}
	}

	return nil
}

func outputBaseName(path string) string {
	if path == "" {
		return "output.h"
	}
	return filepath.Base(path)
}
