// Package export renders notes as machine-readable records in JSON, YAML or
// CBOR.
package export

import (
	"encoding/hex"
	"fmt"

	"github.com/arloliu/elfnote/note"
	"github.com/arloliu/elfnote/noteset"
)

// Record is the serializable view of one note.
type Record struct {
	Index       int            `json:"index" yaml:"index" cbor:"index"`
	Name        string         `json:"name" yaml:"name" cbor:"name"`
	Type        string         `json:"type" yaml:"type" cbor:"type"`
	RawType     uint32         `json:"raw_type" yaml:"raw_type" cbor:"raw_type"`
	Section     string         `json:"section,omitempty" yaml:"section,omitempty" cbor:"section,omitempty"`
	Size        int            `json:"size" yaml:"size" cbor:"size"`
	Description string         `json:"description" yaml:"description" cbor:"description"`
	Details     map[string]any `json:"details,omitempty" yaml:"details,omitempty" cbor:"details,omitempty"`
}

// Section groups the records of one note container.
type Section struct {
	Name   string   `json:"name" yaml:"name" cbor:"name"`
	Offset uint64   `json:"offset" yaml:"offset" cbor:"offset"`
	Notes  []Record `json:"notes" yaml:"notes" cbor:"notes"`
}

// File groups the note containers of one file.
type File struct {
	Path     string    `json:"path" yaml:"path" cbor:"path"`
	Sections []Section `json:"sections" yaml:"sections" cbor:"sections"`
}

// FromNote builds the record of n. Details are filled for structured variants
// whose payload decodes cleanly.
func FromNote(n note.Note) Record {
	rec := Record{
		Name:        n.Name(),
		Type:        n.Type().String(),
		RawType:     n.RawType(),
		Size:        n.Size(),
		Description: hex.EncodeToString(n.Description()),
	}
	if name, err := note.SectionName(n.Type()); err == nil {
		rec.Section = name
	}
	rec.Details = details(n)

	return rec
}

// FromSet builds one record per note of s, in order.
func FromSet(s *noteset.Set) []Record {
	records := make([]Record, 0, s.Len())
	for i, n := range s.All() {
		rec := FromNote(n)
		rec.Index = i
		records = append(records, rec)
	}

	return records
}

func details(n note.Note) map[string]any {
	switch v := n.(type) {
	case *note.BuildID:
		return map[string]any{"build_id": v.Hex()}
	case *note.GoBuildID:
		if id, err := v.ID(); err == nil {
			return map[string]any{"go_build_id": id}
		}
	case *note.GoldVersion:
		if ver, err := v.Version(); err == nil {
			return map[string]any{"version": ver}
		}
	case *note.ABITag:
		return abiTagDetails(v)
	case *note.HWCap:
		if caps, err := v.Capabilities(); err == nil {
			names := make([]string, 0, len(caps))
			for _, c := range caps {
				names = append(names, c.Name)
			}
			mask, _ := v.Mask()

			return map[string]any{"mask": mask, "capabilities": names}
		}
	case *note.GNUProperty:
		return propertyDetails(v)
	case *note.AndroidIdent:
		return androidDetails(v)
	case *note.CorePrStatus:
		return prstatusDetails(v)
	case *note.CorePrPsInfo:
		if info, err := v.Info(); err == nil {
			return map[string]any{
				"pid":       info.PID,
				"ppid":      info.PPID,
				"uid":       info.UID,
				"gid":       info.GID,
				"file_name": info.FileName,
				"args":      info.Args,
			}
		}
	case *note.CoreAuxv:
		if entries, err := v.Entries(); err == nil {
			auxv := make(map[string]any, len(entries))
			for _, e := range entries {
				auxv[e.Type.String()] = e.Value
			}

			return map[string]any{"auxv": auxv}
		}
	case *note.CoreFile:
		return fileDetails(v)
	case *note.CoreSigInfo:
		signo, err1 := v.SigNo()
		code, err2 := v.SigCode()
		errno, err3 := v.SigErrNo()
		if err1 == nil && err2 == nil && err3 == nil {
			return map[string]any{"signo": signo, "code": code, "errno": errno}
		}
	case *note.CoreXState:
		xcr0, err1 := v.XCR0()
		bv, err2 := v.XStateBV()
		if err1 == nil && err2 == nil {
			return map[string]any{"xcr0": xcr0, "xstate_bv": bv}
		}
	case *note.CoreSVE:
		if h, err := v.Header(); err == nil {
			return map[string]any{"vl": h.VL, "max_vl": h.MaxVL, "flags": h.Flags}
		}
	}

	return nil
}

func abiTagDetails(n *note.ABITag) map[string]any {
	abi, err := n.ABI()
	if err != nil {
		return nil
	}
	version, err := n.Version()
	if err != nil {
		return nil
	}

	return map[string]any{
		"abi":     abi.String(),
		"version": fmt.Sprintf("%d.%d.%d", version[0], version[1], version[2]),
	}
}

func propertyDetails(n *note.GNUProperty) map[string]any {
	props, err := n.Properties()
	if err != nil {
		return nil
	}

	types := make([]string, 0, len(props))
	for _, p := range props {
		types = append(types, p.Type.String())
	}
	out := map[string]any{"properties": types}
	if features := n.FeatureNames(); len(features) > 0 {
		out["features"] = features
	}

	return out
}

func androidDetails(n *note.AndroidIdent) map[string]any {
	sdk, err := n.SDKVersion()
	if err != nil {
		return nil
	}
	out := map[string]any{"sdk": sdk}
	if ndk, err := n.NDKVersion(); err == nil {
		out["ndk"] = ndk
	}
	if build, err := n.NDKBuildNumber(); err == nil {
		out["ndk_build"] = build
	}

	return out
}

func prstatusDetails(n *note.CorePrStatus) map[string]any {
	st, err := n.Status()
	if err != nil {
		return nil
	}
	out := map[string]any{
		"pid":    st.PID,
		"ppid":   st.PPID,
		"cursig": st.CurSig,
	}
	if regs, err := n.Registers(); err == nil {
		values := make(map[string]any, len(regs))
		for _, r := range regs {
			values[r.Name] = r.Value
		}
		out["registers"] = values
	}

	return out
}

func fileDetails(n *note.CoreFile) map[string]any {
	files, err := n.Files()
	if err != nil {
		return nil
	}
	page, _ := n.PageSize()

	mappings := make([]map[string]any, 0, len(files))
	for _, f := range files {
		mappings = append(mappings, map[string]any{
			"start":  f.Start,
			"end":    f.End,
			"offset": f.Offset,
			"path":   f.Path,
		})
	}

	return map[string]any{"page_size": page, "files": mappings}
}
