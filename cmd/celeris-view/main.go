// Command celeris-view shows an elevation grid as a grayscale or hillshade
// image. It saves the image next to the input with a .png extension and
// then opens the interactive terminal viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"

	"gonum.org/v1/gonum/mat"

	"celeris/internal/gridio"
	"celeris/internal/imaging"
	"celeris/internal/logging"
	"celeris/internal/shade"
	"celeris/internal/tui"
)

type config struct {
	file      string
	mode      tui.Mode
	noDisplay bool
	verbose   bool
}

// parseFlags accepts flags before and after the positional file argument.
func parseFlags(args []string, output io.Writer) (config, error) {
	var (
		cfg  config
		mode string
	)
	flags := flag.NewFlagSet("celeris-view", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&mode, "mode", "normal", "display mode: normal or hillshade")
	flags.BoolVar(&cfg.noDisplay, "no-display", false, "only save the image, do not open the viewer")
	flags.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: celeris-view [--mode normal|hillshade] [--no-display] file")
		flags.PrintDefaults()
	}

	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return cfg, err
		}
		if flags.NArg() == 0 {
			break
		}
		positional = append(positional, flags.Arg(0))
		args = flags.Args()[1:]
	}
	switch len(positional) {
	case 0:
		return cfg, errors.New("the following argument is required: file")
	case 1:
		cfg.file = positional[0]
	default:
		return cfg, fmt.Errorf("unexpected argument %q", positional[1])
	}

	switch mode {
	case "normal":
		cfg.mode = tui.ModeNormal
	case "hillshade":
		cfg.mode = tui.ModeHillshade
	default:
		return cfg, fmt.Errorf("invalid choice for --mode: %q (choose from normal, hillshade)", mode)
	}
	return cfg, nil
}

// saveImage writes the figure for cfg.file next to it and returns its path:
// gray levels with a colorbar, or gray levels blended with a hillshade.
func saveImage(cfg config, grid *mat.Dense) (string, error) {
	var (
		img image.Image
		fig imaging.Figure
	)
	if cfg.mode == tui.ModeHillshade {
		img = shade.Shade(grid, shade.Gray, shade.DefaultLight)
	} else {
		img = shade.Colorize(grid, shade.Gray)
		fig.Colorbar = shade.Gray
	}
	out := gridio.ReplaceExt(cfg.file, ".png")
	if err := imaging.SaveFigure(out, img, fig); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	rows, cols := grid.Dims()
	logging.Logger().Info("image saved", "path", out, "mode", cfg.mode.String(), "rows", rows, "cols", cols)
	return out, nil
}

func run(cfg config) error {
	grid, err := gridio.Load(cfg.file)
	if err != nil {
		return err
	}
	if _, err := saveImage(cfg, grid); err != nil {
		return err
	}
	if cfg.noDisplay {
		return nil
	}
	// the viewer owns the terminal from here on
	logging.SetLogger(nil)
	return tui.Run(tui.NewWithGrid(cfg.file, grid, cfg.mode))
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	logging.SetLogger(logging.NewText(os.Stdout, cfg.verbose))
	if err := run(cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("[ERROR] File not found: %s\n", cfg.file)
		} else {
			fmt.Printf("[ERROR] %v\n", err)
		}
		os.Exit(1)
	}
}
