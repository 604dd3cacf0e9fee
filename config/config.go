// Package config loads scene tuning from YAML: an embedded default, optionally
// overridden by a file on disk that can be hot reloaded.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/tumbler/common"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the override file looked up next to the working directory.
const DefaultFile = "tumbler.yaml"

//go:embed tumbler.yaml
var defaultYAML []byte

type Tuning struct {
	// Gravity is the magnitude applied per g of accelerometer reading.
	Gravity        float64   `yaml:"gravity"`
	PointsPerMeter float64   `yaml:"points_per_meter"`
	SampleRateHz   float64   `yaml:"sample_rate_hz"`
	InitialShapes  int       `yaml:"initial_shapes"`
	Body           BodySpec  `yaml:"body"`
	Colors         ColorSpec `yaml:"colors"`
	Debug          bool      `yaml:"debug"`
}

type BodySpec struct {
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type ColorSpec struct {
	Background YAMLColor `yaml:"background"`
	Fill       YAMLColor `yaml:"fill"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	if t, err := Parse(defaultYAML); err == nil {
		return t
	}
	return fallback()
}

func fallback() Tuning {
	return Tuning{
		Gravity:        common.EarthGravity,
		PointsPerMeter: 150,
		SampleRateHz:   30,
		InitialShapes:  10,
		Body:           BodySpec{Mass: 1, Friction: 0.5, Elasticity: 0.2},
		Colors: ColorSpec{
			Background: YAMLColor{Color: colornames.Black},
			Fill:       YAMLColor{Color: colornames.White},
		},
	}
}

// Load reads path over the defaults. An empty path returns the embedded
// default.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

// ErrEmpty is returned for a document with no content. Editors truncate a
// file before writing it, and that state must not reset the tuning.
var ErrEmpty = errors.New("empty document")

// Parse unmarshals data over the fallback values and validates the result.
func Parse(data []byte) (Tuning, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Tuning{}, fmt.Errorf("unmarshal: %w", err)
	}
	if len(doc.Content) == 0 {
		return Tuning{}, ErrEmpty
	}
	t := fallback()
	if err := doc.Decode(&t); err != nil {
		return Tuning{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.PointsPerMeter <= 0 {
		return fmt.Errorf("points_per_meter must be positive, got %v", t.PointsPerMeter)
	}
	if t.SampleRateHz <= 0 {
		return fmt.Errorf("sample_rate_hz must be positive, got %v", t.SampleRateHz)
	}
	if t.InitialShapes < 0 {
		return fmt.Errorf("initial_shapes must not be negative, got %d", t.InitialShapes)
	}
	if t.Body.Mass <= 0 {
		return fmt.Errorf("body.mass must be positive, got %v", t.Body.Mass)
	}
	return nil
}

// SampleInterval converts SampleRateHz to a polling interval.
func (t Tuning) SampleInterval() time.Duration {
	if t.SampleRateHz <= 0 {
		return time.Second / 30
	}
	return time.Duration(float64(time.Second) / t.SampleRateHz)
}

// YAMLColor is a colour written as a CSS name from colornames ("white",
// "steelblue") or as hex "#rrggbb" / "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color: expected a name or hex string at line %d", value.Line)
	}
	clr, err := parseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = clr
	return nil
}

func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return named, nil
	}
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 && len(digits) != 8 {
		return nil, fmt.Errorf("color %q: unknown name or bad hex length", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	if len(digits) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
