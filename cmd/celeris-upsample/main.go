// Command celeris-upsample changes the resolution of an elevation grid.
//
// The result is written to the working directory as
// <input stem>_upsample<factor>_<type>.txt with six decimals per value.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"celeris/internal/gridio"
	"celeris/internal/logging"
	"celeris/internal/resample"
)

type config struct {
	input   string
	factor  float64
	method  resample.Method
	verbose bool
}

func parseFlags(args []string, output io.Writer) (config, error) {
	cfg := config{method: resample.Bilinear}
	flags := flag.NewFlagSet("celeris-upsample", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.input, "input", "", "path to the input space-delimited text file (required)")
	flags.Float64Var(&cfg.factor, "factor", 0, "upsampling factor, e.g. 1.5 or 2.0 (required)")
	flags.TextVar(&cfg.method, "type", resample.Bilinear, "interpolation: "+strings.Join(resample.Methods(), ", "))
	flags.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}
	seen := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	for _, name := range []string{"input", "factor"} {
		if !seen[name] {
			return cfg, fmt.Errorf("the following argument is required: --%s", name)
		}
	}
	if !(cfg.factor > 0) || math.IsInf(cfg.factor, 0) {
		return cfg, fmt.Errorf("%w: %g", resample.ErrBadFactor, cfg.factor)
	}
	return cfg, nil
}

// outputName names the result the way earlier releases did, with the
// factor printed like a Python float ("2.0", "1.5").
func outputName(cfg config) string {
	return fmt.Sprintf("%s_upsample%s_%s.txt", gridio.Stem(cfg.input), formatFactor(cfg.factor), cfg.method)
}

func formatFactor(f float64) string {
	if f != 0 {
		if exp := math.Floor(math.Log10(math.Abs(f))); exp < -4 || exp >= 16 {
			return strconv.FormatFloat(f, 'e', -1, 64)
		}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// run writes the resampled grid into dir and returns its path.
func run(cfg config, dir string) (string, error) {
	log := logging.Logger()
	src, err := gridio.Load(cfg.input)
	if err != nil {
		return "", err
	}
	rows, cols := src.Dims()
	log.Debug("grid loaded", "path", cfg.input, "rows", rows, "cols", cols)

	dst, err := resample.Zoom(src, cfg.factor, cfg.method)
	if err != nil {
		return "", err
	}
	out := filepath.Join(dir, outputName(cfg))
	if err := gridio.Save(out, dst, gridio.Floats); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	outRows, outCols := dst.Dims()
	log.Info("upsampled data saved", "path", out, "rows", outRows, "cols", outCols, "type", cfg.method.String())
	return out, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("[ERROR] %v\nUsage: celeris-upsample --input FILE --factor F [--type nearest|bilinear|bicubic]\n", err)
		os.Exit(1)
	}
	logging.SetLogger(logging.NewText(os.Stdout, cfg.verbose))
	if _, err := run(cfg, ""); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("[ERROR] File not found: %s\n", cfg.input)
		} else {
			fmt.Printf("[ERROR] %v\n", err)
		}
		os.Exit(1)
	}
}
