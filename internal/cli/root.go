// Package cli provides the command-line interface for json-distiller.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jacobprice808/json-distiller/distill"
	"github.com/jacobprice808/json-distiller/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "json-distiller [input-file]",
		Short: "Distill repetitive JSON into compact structural summaries",
		Long: `json-distiller rewrites large, repetitive JSON (or YAML) documents into
structurally equivalent but drastically smaller ones. Runs of list elements
that share the same deep structure collapse into one concrete example plus a
count summary, so the output still shows every distinct shape the document
contains without repeating it.

Reads from the positional input file or stdin when the argument is "-" or
omitted. Writes <stem>_distilled.json beside the working directory unless
--output says otherwise; --output - writes to stdout.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDistill,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./json-distiller.yaml)")
	rootCmd.Flags().Bool("strict-typing", true, "treat int and float fields as distinct structures")
	rootCmd.Flags().Bool("position-dependent", true, "track shown examples per nesting depth instead of globally")
	rootCmd.Flags().Int("repeat-threshold", config.DefaultRepeatThreshold, "minimum run length before siblings are summarized")
	rootCmd.Flags().StringP("format", "f", config.DefaultFormat, "input format (json|yaml)")
	rootCmd.Flags().StringP("output", "o", "", "output path (\"-\" for stdout)")
	rootCmd.Flags().String("log-level", config.DefaultLogLevel, "log verbosity (error|warn|info|debug)")
	rootCmd.Flags().BoolP("verbose", "v", false, "debug logging plus a size-reduction report")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewMCPCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func runDistill(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	level := distill.ParseLogLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = distill.LevelDebug
	}
	log := distill.NewLogger(level, cmd.ErrOrStderr())

	if cfg.Verbose {
		if used := config.GetConfigFileUsed(); used != "" {
			log.With(map[string]any{"file": used}).Debugf("config file loaded")
		}
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}
	data, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	var root *distill.Value
	switch cfg.Format {
	case "yaml":
		root, err = distill.DecodeYAML(data)
	default:
		root, err = distill.DecodeJSON(data)
	}
	if err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	opts := distill.Options{
		StrictTyping:      cfg.StrictTyping,
		PositionDependent: cfg.PositionDependent,
		RepeatThreshold:   cfg.RepeatThreshold,
		Logger:            log,
	}
	env, res, err := distill.DistillDocument(root, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log.With(map[string]any{
			"input_nodes":  res.InputNodes,
			"output_nodes": res.OutputNodes,
			"reduction":    fmt.Sprintf("%.1f%%", res.Reduction()*100),
		}).Infof("document distilled")
	}

	dest := outputPath(cfg.Output, input)
	return writeOutput(cmd.OutOrStdout(), dest, env)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// outputPath resolves the destination: an explicit --output wins, stdin input
// defaults to stdout, and file input derives <stem>_distilled.json.
func outputPath(explicit, input string) string {
	if explicit != "" {
		return explicit
	}
	if input == "" || input == "-" {
		return "-"
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + config.DefaultOutputSuffix
}

func writeOutput(stdout io.Writer, dest string, env *distill.Value) error {
	if dest == "-" {
		// Pretty for humans at a terminal, compact when piped.
		indent := ""
		if f, ok := stdout.(*os.File); ok &&
			(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			indent = "  "
		}
		out, err := distill.EncodeJSON(env, indent)
		if err != nil {
			return err
		}
		out = append(out, '\n')
		_, err = stdout.Write(out)
		return err
	}

	out, err := distill.EncodeJSON(env, "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}
