package main

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"celeris/internal/gridio"
	"celeris/internal/resample"
)

func TestParseFlags(t *testing.T) {
	got, err := parseFlags([]string{"--input", "dem.txt", "--factor", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	want := config{input: "dem.txt", factor: 2, method: resample.Bilinear}
	if got != want {
		t.Errorf("parseFlags() = %+v, want %+v", got, want)
	}
	got, err = parseFlags([]string{"--input", "dem.txt", "--factor", "1.5", "--type", "bicubic"}, io.Discard)
	if err != nil || got.method != resample.Bicubic {
		t.Errorf("parseFlags(--type bicubic) = %+v, %v", got, err)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"--factor", "2"}},
		{"no factor", []string{"--input", "dem.txt"}},
		{"zero factor", []string{"--input", "dem.txt", "--factor", "0"}},
		{"bad type", []string{"--input", "dem.txt", "--factor", "2", "--type", "lanczos"}},
		{"positional", []string{"--input", "dem.txt", "--factor", "2", "more"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseFlags(tc.args, io.Discard); err == nil {
				t.Errorf("parseFlags(%q) succeeded", tc.args)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		cfg  config
		want string
	}{
		{config{input: filepath.Join("data", "bathy.txt"), factor: 2, method: resample.Bilinear}, "bathy_upsample2.0_bilinear.txt"},
		{config{input: "bathy.txt", factor: 1.5, method: resample.Nearest}, "bathy_upsample1.5_nearest.txt"},
		{config{input: "bathy", factor: 0.25, method: resample.Bicubic}, "bathy_upsample0.25_bicubic.txt"},
		{config{input: "b.txt", factor: 0.00001, method: resample.Bicubic}, "b_upsample1e-05_bicubic.txt"},
	}
	for _, tc := range tests {
		if got := outputName(tc.cfg); got != tc.want {
			t.Errorf("outputName(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dem.txt")
	if err := os.WriteFile(input, []byte("0 10\n20 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(config{input: input, factor: 1.5, method: resample.Bilinear}, dir)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if filepath.Base(out) != "dem_upsample1.5_bilinear.txt" {
		t.Errorf("run() wrote %s", out)
	}
	got, err := gridio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	// 2x2 -> 3x3 with the middle sample halfway between the corners
	want := mat.NewDense(3, 3, []float64{0, 5, 10, 10, 15, 20, 20, 25, 30})
	if !mat.EqualApprox(got, want, 1e-6) {
		t.Errorf("upsampled = %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}

	_, err = run(config{input: filepath.Join(dir, "missing.txt"), factor: 2}, dir)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("run(missing) error = %v, want %v", err, fs.ErrNotExist)
	}
}
