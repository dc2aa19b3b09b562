// Package linefile loads polyline scenes from YAML, TOML, JSON and CSV
// files.
//
// YAML, TOML and JSON share one schema:
//
//	lines:
//	  - closed: true
//	    width: taper      # constant, taper, swell or pulse
//	    scale: 2
//	    points: [[0, 0, 0], [1, 0, 0], [1, 1, 0]]
//
// points accepts any shape ribbon.NormalizePoints does: a flat coordinate
// list, [x, y] or [x, y, z] tuples, or {x, y, z} maps. CSV files carry one
// point per row with the columns line, x, y and the optional z and closed.
package linefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/ribbon"
)

var (
	// ErrUnknownFormat is returned for unsupported file extensions.
	ErrUnknownFormat = errors.New("linefile: unknown format")

	// ErrUnknownProfile is returned for unknown width profile names.
	ErrUnknownProfile = errors.New("linefile: unknown width profile")
)

// Format is a scene file encoding.
type Format int

const (
	FormatYAML Format = iota + 1
	FormatTOML
	FormatJSON
	FormatCSV
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format for the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads the scene file at path.
func Load(path string) ([]ribbon.Polyline, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linefile: %w", err)
	}
	defer f.Close()

	lines, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("linefile: %s: %w", path, err)
	}
	return lines, nil
}

// Decode reads a scene in format from r.
func Decode(r io.Reader, format Format) ([]ribbon.Polyline, error) {
	if format == FormatCSV {
		return decodeCSV(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc scene
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %v: %w", format, err)
	}
	return doc.polylines()
}

// scene is the document shared by the YAML, TOML and JSON encodings.
type scene struct {
	Lines []lineSpec `yaml:"lines" toml:"lines" json:"lines"`
}

type lineSpec struct {
	Closed bool     `yaml:"closed" toml:"closed" json:"closed"`
	Width  string   `yaml:"width" toml:"width" json:"width"`
	Scale  *float64 `yaml:"scale" toml:"scale" json:"scale"`
	Points any      `yaml:"points" toml:"points" json:"points"`
}

func (s *scene) polylines() ([]ribbon.Polyline, error) {
	out := make([]ribbon.Polyline, len(s.Lines))
	for i, l := range s.Lines {
		scale := float32(1)
		if l.Scale != nil {
			scale = float32(*l.Scale)
		}
		width, err := Profile(l.Width, scale)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		out[i] = ribbon.Polyline{
			Points: l.Points,
			Closed: l.Closed,
			Width:  width,
		}
	}
	return out, nil
}
