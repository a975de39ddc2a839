package shaders

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed phong.wgsl
var PhongWGSL string

//go:embed marker.wgsl
var MarkerWGSL string

//go:embed text.wgsl
var TextWGSL string

const (
	PhongFile  = "phong.wgsl"
	MarkerFile = "marker.wgsl"
	TextFile   = "text.wgsl"
)

// Failure kinds of the shading stage. Errors returned by this package and by
// pipeline construction wrap one of these.
var (
	ErrRead    = errors.New("shader read failed")
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("shader link failed")
)

// Sources is one complete set of WGSL programs.
type Sources struct {
	Phong  string
	Marker string
	Text   string
}

func Embedded() Sources {
	return Sources{Phong: PhongWGSL, Marker: MarkerWGSL, Text: TextWGSL}
}

// Load returns name from dir, or the embedded copy when dir is empty or the
// file does not exist there.
func Load(dir, name string) (string, error) {
	embedded, ok := map[string]string{
		PhongFile:  PhongWGSL,
		MarkerFile: MarkerWGSL,
		TextFile:   TextWGSL,
	}[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown shader %q", ErrRead, name)
	}
	if dir == "" {
		return embedded, nil
	}

	src, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return embedded, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRead, name, err)
	}
	return string(src), nil
}

// LoadSources loads every program with Load.
func LoadSources(dir string) (Sources, error) {
	var s Sources
	var err error
	if s.Phong, err = Load(dir, PhongFile); err != nil {
		return Sources{}, err
	}
	if s.Marker, err = Load(dir, MarkerFile); err != nil {
		return Sources{}, err
	}
	if s.Text, err = Load(dir, TextFile); err != nil {
		return Sources{}, err
	}
	return s, nil
}
