package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/elfnote"
	"github.com/arloliu/elfnote/archive"
	"github.com/arloliu/elfnote/endian"
	"github.com/arloliu/elfnote/section"
)

var errAmbiguousSection = errors.New("file has several note containers, select one with --section")

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Pack note containers into compressed archives and read them back",
	}
	cmd.AddCommand(newPackCmd(a), newUnpackCmd(a), newInfoCmd(a))

	return cmd
}

func newPackCmd(a *app) *cobra.Command {
	var (
		output  string
		secName string
	)

	cmd := &cobra.Command{
		Use:   "pack <elf-file>",
		Short: "Archive one note container of an ELF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := elfnote.ReadFile(args[0], a.noteOptions()...)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			sec, err := pickSection(sections, secName)
			if err != nil {
				return err
			}

			data, err := archive.Encode(sec.Notes,
				archive.WithCompression(a.cfg.Compression),
				archive.WithLogger(a.logger),
			)
			if err != nil {
				return fmt.Errorf("encode %s: %w", sec.Name, err)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec
				return err
			}

			a.logger.Info("archive written",
				slog.String("section", sec.Name),
				slog.String("output", output),
				slog.Int("notes", sec.Notes.Len()),
				slog.Int("bytes", len(data)),
			)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive file to write")
	cmd.Flags().StringVar(&secName, "section", "", "Note section or segment to archive")
	cmd.Flags().StringVar(&a.compression, "compression", "", "Codec: none, zstd, s2 or lz4")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// pickSection selects the container named name, or the only one when name is
// empty.
func pickSection(sections []elfnote.Section, name string) (elfnote.Section, error) {
	if name == "" {
		switch len(sections) {
		case 0:
			return elfnote.Section{}, errors.New("file has no note containers")
		case 1:
			return sections[0], nil
		default:
			names := make([]string, 0, len(sections))
			for _, s := range sections {
				names = append(names, s.Name)
			}

			return elfnote.Section{}, fmt.Errorf("%w: %s", errAmbiguousSection, strings.Join(names, ", "))
		}
	}

	for _, s := range sections {
		if s.Name == name {
			return s, nil
		}
	}

	return elfnote.Section{}, fmt.Errorf("no note container named %q", name)
}

func newUnpackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <archive>",
		Short: "Decode the notes stored in an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			set, err := archive.Decode(data, archive.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			return a.renderSet(cmd.OutOrStdout(), args[0], set)
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <archive>",
		Short: "Show the header of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			hdr, err := archive.Header(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			engine := endian.GetLittleEndianEngine()
			if hdr.IsBigEndian() {
				engine = endian.GetBigEndianEngine()
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Version:     %d\n", hdr.Version)
			fmt.Fprintf(w, "Compression: %s\n", hdr.Compression)
			fmt.Fprintf(w, "Byte order:  %s endian\n", endian.Name(engine))
			fmt.Fprintf(w, "Alignment:   %d\n", hdr.Alignment)
			fmt.Fprintf(w, "Class:       %s\n", hdr.Class)
			fmt.Fprintf(w, "File kind:   %s\n", hdr.FileKind)
			fmt.Fprintf(w, "Machine:     %s\n", hdr.Arch)
			fmt.Fprintf(w, "Notes:       %d\n", hdr.NoteCount)
			fmt.Fprintf(w, "Raw size:    %d\n", hdr.RawSize)
			if hdr.RawSize > 0 {
				ratio := float64(len(data)-section.ArchiveHeaderSize) / float64(hdr.RawSize)
				fmt.Fprintf(w, "Ratio:       %.2f\n", ratio)
			}
			fmt.Fprintf(w, "Checksum:    %016x\n", hdr.Checksum)

			a.logger.Debug("archive header", slog.String("path", args[0]))

			return nil
		},
	}
}
