package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultMatchesEmbeddedFile(t *testing.T) {
	d := Default()
	if d.Gravity != 9.81 {
		t.Fatalf("expected gravity 9.81, got %v", d.Gravity)
	}
	if d.InitialShapes != 10 {
		t.Fatalf("expected 10 initial shapes, got %d", d.InitialShapes)
	}
	if got := d.SampleInterval(); got != time.Second/30 {
		t.Fatalf("expected 30 Hz interval, got %v", got)
	}
	r, g, b, a := d.Colors.Fill.RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Fatalf("expected white fill, got %v", d.Colors.Fill.Color)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, tu Tuning)
	}{
		{
			name: "partial_override_keeps_defaults",
			yaml: "gravity: 4.5\n",
			check: func(t *testing.T, tu Tuning) {
				if tu.Gravity != 4.5 || tu.InitialShapes != 10 || tu.PointsPerMeter != 150 {
					t.Fatalf("unexpected tuning %+v", tu)
				}
			},
		},
		{
			name: "colors_with_alpha",
			yaml: "colors:\n  background: \"#10203040\"\n  fill: \"ff0000\"\n",
			check: func(t *testing.T, tu Tuning) {
				if tu.Colors.Background.Color != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}) {
					t.Fatalf("unexpected background %v", tu.Colors.Background.Color)
				}
				if tu.Colors.Fill.Color != (color.NRGBA{R: 0xff, A: 0xff}) {
					t.Fatalf("unexpected fill %v", tu.Colors.Fill.Color)
				}
			},
		},
		{
			name: "color_names",
			yaml: "colors:\n  background: SteelBlue\n  fill: gold\n",
			check: func(t *testing.T, tu Tuning) {
				if tu.Colors.Background.Color != (color.RGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}) {
					t.Fatalf("unexpected background %v", tu.Colors.Background.Color)
				}
				if tu.Colors.Fill.Color != (color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}) {
					t.Fatalf("unexpected fill %v", tu.Colors.Fill.Color)
				}
			},
		},
		{name: "unknown_color_name", yaml: "colors:\n  fill: blurple\n", wantErr: "unknown name or bad hex length"},
		{name: "bad_color_length", yaml: "colors:\n  fill: \"#fff\"\n", wantErr: "unknown name or bad hex length"},
		{name: "bad_color_digits", yaml: "colors:\n  fill: \"#gg0000\"\n", wantErr: "invalid syntax"},
		{name: "color_not_scalar", yaml: "colors:\n  fill: [1, 2]\n", wantErr: "expected a name or hex string"},
		{name: "empty_document", yaml: "", wantErr: "empty document"},
		{name: "whitespace_only", yaml: "  \n\n   \n", wantErr: "empty document"},
		{name: "comment_only", yaml: "# truncated\n", wantErr: "empty document"},
		{name: "zero_sample_rate", yaml: "sample_rate_hz: 0\n", wantErr: "sample_rate_hz"},
		{name: "negative_shapes", yaml: "initial_shapes: -1\n", wantErr: "initial_shapes"},
		{name: "zero_mass", yaml: "body:\n  mass: 0\n", wantErr: "body.mass"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tu, err := Parse([]byte(c.yaml))
			if c.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), c.wantErr) {
					t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			c.check(t, tu)
		})
	}
}

func TestLoad(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte("initial_shapes: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tu, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tu.InitialShapes != 3 {
		t.Fatalf("expected 3 initial shapes, got %d", tu.InitialShapes)
	}

	d, err := Load("")
	if err != nil || d.InitialShapes != 10 {
		t.Fatalf("empty path should load defaults, got %+v err=%v", d, err)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte("gravity: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("gravity: 2\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != DefaultFile {
			t.Fatalf("unexpected event for %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for config write")
	}
}

func TestWatcherReportsLastWriteOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte("gravity: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	// An editor save: truncate, then write the new content.
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if err := os.WriteFile(path, []byte("gravity: 3\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case got := <-w.Events:
		tu, err := Load(got)
		if err != nil {
			t.Fatalf("load after event: %v", err)
		}
		if tu.Gravity != 3 {
			t.Fatalf("expected the final write (gravity 3), got %v", tu.Gravity)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for config write")
	}

	select {
	case got := <-w.Events:
		t.Fatalf("expected a single event per save, got another for %s", got)
	case <-time.After(3 * debounce):
	}
}

func TestLoadEmptyFileKeepsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty for a truncated file, got %v", err)
	}
}
