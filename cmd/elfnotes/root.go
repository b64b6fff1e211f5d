package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/section"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	configPath  string
	verbose     bool
	format      string
	compression string
	alignment   int
	noColor     bool

	cfg    config
	logger *slog.Logger
}

// newRootCmd builds the command tree. stderr receives log output.
func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "elfnotes",
		Short: "Inspect, classify and archive ELF notes",
		Long: `elfnotes decodes the note sections of ELF executables, shared objects and
core dumps: build IDs, ABI tags, GNU properties, Android and Go notes, and the
per-thread state stored in core files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, stderr)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file with defaults")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "Output format: text, json, yaml or cbor")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable syntax highlighting of JSON and YAML output")
	root.PersistentFlags().IntVar(&a.alignment, "alignment", 0, "Force the note alignment to 4 or 8 bytes")

	root.AddCommand(newDumpCmd(a), newClassifyCmd(a), newArchiveCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		if err := validateFormat(a.format); err != nil {
			return err
		}
		cfg.Format = a.format
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Lookup("compression") != nil && flags.Changed("compression") {
		c, err := format.ParseCompression(a.compression)
		if err != nil {
			return err
		}
		cfg.Compression = c
	}
	if flags.Changed("alignment") {
		if !section.ValidAlignment(a.alignment) {
			return fmt.Errorf("alignment %d is not 4 or 8", a.alignment)
		}
		cfg.Alignment = a.alignment
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = newLogger(stderr, level)
	slog.SetDefault(a.logger)

	return nil
}

// newLogger logs as text when w is a terminal and as JSON otherwise, so piped
// output stays machine readable.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// noteOptions returns the note options implied by the configuration.
func (a *app) noteOptions() []note.Option {
	opts := []note.Option{note.WithLogger(a.logger)}
	if a.cfg.Alignment != 0 {
		opts = append(opts, note.WithAlignment(a.cfg.Alignment))
	}

	return opts
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
