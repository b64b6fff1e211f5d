package export

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/elfnote/errs"
)

// Format is a machine-readable output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name.
//
// Returns:
//   - Format: Parsed format
//   - error: errs.ErrInvalidExportFormat for any other name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", name, errs.ErrInvalidExportFormat)
	}
}

// CBOR uses Core Deterministic Encoding, so equal records encode to equal
// bytes regardless of map iteration order.
var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error

	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}

	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("export: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v, a Record, File or slice of them, in the given format.
// JSON output is indented.
func Marshal(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(out, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatCBOR:
		return cborEnc.Marshal(v)
	default:
		return nil, fmt.Errorf("%q: %w", string(f), errs.ErrInvalidExportFormat)
	}
}

// Unmarshal decodes data produced by Marshal into v.
func Unmarshal(data []byte, f Format, v any) error {
	var err error

	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatCBOR:
		err = cborDec.Unmarshal(data, v)
	default:
		return fmt.Errorf("%q: %w", string(f), errs.ErrInvalidExportFormat)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", f, err)
	}

	return nil
}
