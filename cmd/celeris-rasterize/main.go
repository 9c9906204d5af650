// Command celeris-rasterize burns building footprints into a height grid.
//
// The inventory is a CSV file with a WKT "geometry" column and an
// "NFloors" column (or a GeoJSON feature collection with an NFloors
// property). Every cell touched by a footprint gets the footprint's floor
// count times the floor height; overlapping footprints keep the maximum.
// The grid is written next to the input as a text matrix (.txt) and a
// color-mapped image (.png, viridis unless -cmap says otherwise).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"celeris/internal/geom"
	"celeris/internal/gridio"
	"celeris/internal/imaging"
	"celeris/internal/logging"
	"celeris/internal/raster"
	"celeris/internal/shade"
)

const usageExample = "  celeris-rasterize -i inventory.csv --dx 0.000009000009 --dy 0.000009000009 --floor_height 3.0"

type config struct {
	input   string
	opts    raster.Options
	cmap    string
	verbose bool
}

func parseFlags(args []string, output io.Writer) (config, error) {
	cfg := config{opts: raster.DefaultOptions(), cmap: shade.Viridis.Name}
	flags := flag.NewFlagSet("celeris-rasterize", flag.ContinueOnError)
	flags.SetOutput(output)
	const inputUsage = "input CSV file with geometry and NFloors columns"
	flags.StringVar(&cfg.input, "input", "inventory.csv", inputUsage)
	flags.StringVar(&cfg.input, "i", "inventory.csv", inputUsage+" (shorthand)")
	flags.Float64Var(&cfg.opts.DX, "dx", raster.DefaultCellSize, "pixel width in coordinate units")
	flags.Float64Var(&cfg.opts.DY, "dy", raster.DefaultCellSize, "pixel height in coordinate units")
	flags.Float64Var(&cfg.opts.FloorHeight, "floor_height", raster.DefaultFloorHeight, "height per floor")
	flags.StringVar(&cfg.cmap, "cmap", cfg.cmap, "colormap of the PNG: viridis or gray")
	flags.BoolVar(&cfg.verbose, "v", false, "log every footprint")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}
	if _, ok := shade.ByName(cfg.cmap); !ok {
		return cfg, fmt.Errorf("unknown colormap %q", cfg.cmap)
	}
	return cfg, cfg.opts.Validate()
}

func run(cfg config) error {
	log := logging.Logger()
	fps, err := geom.LoadInventory(cfg.input)
	if err != nil {
		return err
	}
	grid, err := raster.Rasterize(fps, cfg.opts)
	if err != nil {
		return err
	}
	ext := grid.Extent()
	log.Info("raster size", "width", grid.Cols(), "height", grid.Rows(), "footprints", len(fps),
		"extent", fmt.Sprintf("[%g %g %g %g]", ext.Min[0], ext.Min[1], ext.Max[0], ext.Max[1]))

	heights := grid.Dense()
	txt := gridio.ReplaceExt(cfg.input, ".txt")
	if err := gridio.Save(txt, heights, gridio.Ints); err != nil {
		return fmt.Errorf("save raster: %w", err)
	}
	log.Info("raster saved", "path", txt, "rows", grid.Rows(), "cols", grid.Cols(),
		"covered", grid.Covered(), "max", grid.Max())

	cmap, ok := shade.ByName(cfg.cmap)
	if !ok {
		cmap = shade.Viridis
	}
	img := gridio.ReplaceExt(txt, ".png")
	if err := imaging.SaveColormap(img, heights, cmap); err != nil {
		return fmt.Errorf("save raster image: %w", err)
	}
	log.Info("raster image saved", "path", img)
	return nil
}

// describe turns a run error into the message shown to the user.
func describe(err error, input string) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("File not found: %s\nPlease check the filename or provide a valid path using the -i or --input flag.", input)
	case errors.Is(err, geom.ErrMissingColumns):
		return "CSV file must contain 'geometry' and 'NFloors' columns."
	}
	return err.Error()
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("\n[ERROR] Invalid command line arguments: %v\n\nUsage Example:\n%s\n\n", err, usageExample)
		os.Exit(1)
	}
	logging.SetLogger(logging.NewText(os.Stdout, cfg.verbose))
	if err := run(cfg); err != nil {
		fmt.Printf("[ERROR] %s\n", describe(err, cfg.input))
		os.Exit(1)
	}
}
