package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/arloliu/elfnote/format"
	"github.com/arloliu/elfnote/note"
)

func newClassifyCmd(a *app) *cobra.Command {
	var (
		kind  string
		owner string
		typ   string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Resolve a raw note type and owner to its semantic type",
		Example: `  elfnotes classify --owner GNU --type 3
  elfnotes classify --kind core --owner CORE --type 0x6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fk, err := format.ParseFileKind(kind)
			if err != nil {
				return err
			}

			raw, err := strconv.ParseUint(typ, 0, 32)
			if err != nil {
				return fmt.Errorf("parse type %q: %w", typ, err)
			}

			t := note.Classify(fk, uint32(raw), owner)
			a.logger.Debug("classified note",
				"kind", fk.String(), "owner", owner, "raw_type", raw, "type", t.String())

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Type:    %s\n", t)
			if sec, err := note.SectionName(t); err == nil {
				fmt.Fprintf(w, "Section: %s\n", sec)
			}
			if o, err := note.Owner(t); err == nil {
				fmt.Fprintf(w, "Owner:   %s\n", o)
			}
			if t == note.TypeUnknown && fk != format.KindCore {
				if hints := suggestOwners(owner); len(hints) > 0 {
					fmt.Fprintf(w, "Did you mean: %s\n", strings.Join(hints, ", "))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "none", "File kind: none, rel, exec, dyn or core")
	cmd.Flags().StringVar(&owner, "owner", "", "Note owner name")
	cmd.Flags().StringVar(&typ, "type", "", "Raw note type, decimal or 0x-prefixed")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// suggestOwners returns the known owners that fuzzily match owner, best match
// first. An owner the classifier knows exactly yields nothing.
func suggestOwners(owner string) []string {
	if owner == "" {
		return nil
	}

	known := note.Owners()
	if slices.Contains(known, owner) {
		return nil
	}

	var hints []string
	for _, m := range fuzzy.Find(strings.ToLower(owner), lowered(known)) {
		hints = append(hints, known[m.Index])
	}

	return hints
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}

	return out
}
