// Package gridio reads and writes 2D grids stored as whitespace-delimited
// text, one grid row per line.
package gridio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmpty is returned for input without any numbers.
	ErrEmpty = errors.New("grid: no data")
	// ErrRagged is returned when rows have different lengths.
	ErrRagged = errors.New("grid: rows have different lengths")
)

// Format selects how cell values are written.
type Format int

const (
	// Ints writes values as integers ("%d").
	Ints Format = iota
	// Floats writes values with six decimals ("%.6f").
	Floats
)

// Load reads a grid from a text file.
func Load(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Read parses a grid. Blank lines and text after '#' are ignored.
func Read(r io.Reader) (*mat.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	var (
		data []float64
		cols = -1
		rows int
		line int
	)
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, fmt.Errorf("line %d: %w: got %d values, want %d", line, ErrRagged, len(fields), cols)
		}
		for _, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEmpty
	}
	return mat.NewDense(rows, cols, data), nil
}

// Write stores m in the given format, values separated by single spaces.
func Write(w io.Writer, m mat.Matrix, format Format) error {
	bw := bufio.NewWriter(w)
	rows, cols := m.Dims()
	buf := make([]byte, 0, 32)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j > 0 {
				bw.WriteByte(' ')
			}
			buf = appendValue(buf[:0], m.At(i, j), format)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func appendValue(buf []byte, v float64, format Format) []byte {
	if format == Ints {
		return strconv.AppendInt(buf, int64(v), 10)
	}
	return strconv.AppendFloat(buf, v, 'f', 6, 64)
}

// Save writes m to path, replacing any existing file.
func Save(path string, m mat.Matrix, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
