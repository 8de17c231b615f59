package power

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvTable names the environment variable that points at a table file.
const EnvTable = "PRATT_TABLE"

// Format is the encoding of a table file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions and format names other
// than TOML and YAML.
var ErrUnknownFormat = errors.New("unknown table format")

// File is the on-disk shape of a table:
//
//	# TOML
//	[[operator]]
//	symbol = "+"
//	role = "infix"
//	left = 5
//	right = 6
//
//	# YAML
//	operators:
//	  - symbol: "+"
//	    role: infix
//	    left: 5
//	    right: 6
type File struct {
	Operators []Entry `toml:"operator" yaml:"operators"`
}

// ParseFormat maps a format name such as "toml", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Load reads and validates a table file. Environment variables in path are
// expanded; the format follows the extension.
func Load(path string) (*Table, error) {
	path = os.ExpandEnv(path)

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("table file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read table: %w", err)
	}

	t, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadFromEnv loads the table named by $PRATT_TABLE, or returns [Default]
// when the variable is unset or empty.
func LoadFromEnv() (*Table, error) {
	path := os.Getenv(EnvTable)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Decode reads a table in the given format and validates it.
func Decode(r io.Reader, format Format) (*Table, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse table: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("failed to parse table: unknown keys %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse table: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(f.Operators) == 0 {
		return nil, fmt.Errorf("%w: table defines no operators", ErrInvalidEntry)
	}
	return New(f.Operators)
}

// Encode writes t in the given format. The output can be read back with
// [Decode].
func Encode(w io.Writer, t *Table, format Format) error {
	f := File{Operators: t.Entries()}
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
