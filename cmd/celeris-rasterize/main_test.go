package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"celeris/internal/raster"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want config
	}{
		{"defaults", nil, config{input: "inventory.csv", opts: raster.DefaultOptions(), cmap: "viridis"}},
		{"short input", []string{"-i", "city.csv"}, config{input: "city.csv", opts: raster.DefaultOptions(), cmap: "viridis"}},
		{
			"long flags",
			[]string{"--input", "a.csv", "--dx", "0.5", "--dy", "0.25", "--floor_height", "2.5", "--cmap", "gray", "-v"},
			config{input: "a.csv", opts: raster.Options{DX: 0.5, DY: 0.25, FloorHeight: 2.5}, cmap: "gray", verbose: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseFlags(tc.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("parseFlags() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--dx", "0"},
		{"--floor_height", "-3"},
		{"--dy", "wide"},
		{"--bogus"},
		{"--cmap", "jet"},
		{"extra.csv"},
	} {
		if _, err := parseFlags(args, io.Discard); err == nil {
			t.Errorf("parseFlags(%q) succeeded", args)
		}
	}
	if _, err := parseFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("parseFlags(-h) error = %v, want %v", err, flag.ErrHelp)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "inventory.csv")
	csv := `geometry,NFloors
"POLYGON ((0.1 0.1, 1.9 0.1, 1.9 1.9, 0.1 1.9, 0.1 0.1))",2
"POLYGON ((2.1 0.1, 2.9 0.1, 2.9 0.9, 2.1 0.9, 2.1 0.1))",
`
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config{input: input, opts: raster.Options{DX: 1, DY: 1, FloorHeight: 3}, cmap: "viridis"}
	if err := run(cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "inventory.txt"))
	if err != nil {
		t.Fatal(err)
	}
	// the small building has no floor count and sits in the southern row
	if want := "6 6 0\n6 6 3\n"; string(got) != want {
		t.Errorf("raster = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "inventory.png")); err != nil {
		t.Errorf("raster image: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.csv")
	err := run(config{input: missing, opts: raster.DefaultOptions()})
	if msg := describe(err, missing); !strings.HasPrefix(msg, "File not found: "+missing) {
		t.Errorf("describe(missing) = %q", msg)
	}

	wrong := filepath.Join(dir, "wrong.csv")
	if err := os.WriteFile(wrong, []byte("wkt,floors\n\"POINT (1 1)\",2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err = run(config{input: wrong, opts: raster.DefaultOptions()})
	if msg := describe(err, wrong); msg != "CSV file must contain 'geometry' and 'NFloors' columns." {
		t.Errorf("describe(missing columns) = %q", msg)
	}
}
