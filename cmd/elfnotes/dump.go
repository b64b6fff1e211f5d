package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/arloliu/elfnote"
	"github.com/arloliu/elfnote/export"
	"github.com/arloliu/elfnote/noteset"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <pattern>...",
		Short: "Decode the notes of ELF files",
		Long: `Decode every SHT_NOTE section, or PT_NOTE segment for core dumps and
section-stripped files, of the ELF files matching the given patterns.
Patterns support ** globs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}

			results := make([]fileResult, 0, len(paths))
			for _, path := range paths {
				a.logger.Debug("reading ELF file", slog.String("path", path))

				sections, err := elfnote.ReadFile(path, a.noteOptions()...)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results = append(results, fileResult{path: path, sections: sections})
			}

			return a.render(cmd.OutOrStdout(), results)
		},
	}
}

// expandPatterns resolves globs in order, dropping duplicates. A pattern
// without matches is an error.
func expandPatterns(patterns []string) ([]string, error) {
	var (
		out  []string
		seen = map[string]struct{}{}
	)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matches no files", pattern)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	return out, nil
}

func toExportFile(path string, sections []elfnote.Section) export.File {
	f := export.File{Path: path, Sections: make([]export.Section, 0, len(sections))}
	for _, sec := range sections {
		f.Sections = append(f.Sections, export.Section{
			Name:   sec.Name,
			Offset: sec.Offset,
			Notes:  export.FromSet(sec.Notes),
		})
	}

	return f
}

type fileResult struct {
	path     string
	sections []elfnote.Section
}

// render writes the decoded files in the configured format.
func (a *app) render(w io.Writer, results []fileResult) error {
	if a.cfg.Format != formatText {
		files := make([]export.File, 0, len(results))
		for _, r := range results {
			files = append(files, toExportFile(r.path, r.sections))
		}
		out, err := export.Marshal(files, export.Format(a.cfg.Format))
		if err != nil {
			return err
		}

		return a.writeEncoded(w, out)
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s:\n", r.path)
		for _, sec := range r.sections {
			name := fmt.Sprintf("%s at 0x%x", sec.Name, sec.Offset)
			if err := a.renderSet(w, name, sec.Notes); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderSet writes one set as text dump or in a machine format.
func (a *app) renderSet(w io.Writer, name string, set *noteset.Set) error {
	if a.cfg.Format != formatText {
		out, err := export.Marshal(export.FromSet(set), export.Format(a.cfg.Format))
		if err != nil {
			return err
		}

		return a.writeEncoded(w, out)
	}

	fmt.Fprintf(w, "%s (%d notes, fingerprint %016x)\n", name, set.Len(), set.Fingerprint())
	for i, n := range set.All() {
		fmt.Fprintf(w, "[%d]\n", i)
		for line := range strings.SplitSeq(strings.TrimRight(n.String(), "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	return nil
}

// writeEncoded writes marshaled output, highlighted when w is a terminal.
// CBOR is binary and always written as is.
func (a *app) writeEncoded(w io.Writer, out []byte) error {
	f := export.Format(a.cfg.Format)
	if a.noColor || f == export.FormatCBOR || !isTerminal(w) {
		_, err := w.Write(out)
		return err
	}

	if err := quick.Highlight(w, string(out), string(f), "terminal256", "monokai"); err != nil {
		a.logger.Debug("highlighting failed, writing plain output", slog.Any("error", err))
		_, err = w.Write(out)

		return err
	}

	return nil
}
