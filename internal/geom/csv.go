package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column names an inventory must carry.
const (
	GeometryColumn = "geometry"
	FloorsColumn   = "NFloors"
)

// LoadInventory reads building footprints from path. CSV files need a
// WKT "geometry" column and an "NFloors" column; .geojson and .json files
// are read as feature collections with an NFloors property.
func LoadInventory(path string) ([]Footprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return ReadGeoJSONInventory(f)
	default:
		return ReadCSVInventory(f)
	}
}

// ReadCSVInventory parses a CSV inventory. A missing or invalid floor count
// counts as one floor.
func ReadCSVInventory(r io.Reader) ([]Footprint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoFootprints
	}
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	idxGeom, idxFloors := -1, -1
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		switch h {
		case GeometryColumn:
			if idxGeom == -1 {
				idxGeom = i
			}
		case FloorsColumn:
			if idxFloors == -1 {
				idxFloors = i
			}
		}
	}
	if idxGeom == -1 || idxFloors == -1 {
		return nil, ErrMissingColumns
	}

	var fps []Footprint
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if idxGeom >= len(row) {
			return nil, fmt.Errorf("csv line %d: %w", line, ErrEmptyGeometry)
		}
		outline, err := ParseFootprintWKT(row[idxGeom])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		floors := 1
		if idxFloors < len(row) {
			floors = ParseFloors(row[idxFloors])
		}
		fps = append(fps, NewFootprint(outline, floors))
	}
	if len(fps) == 0 {
		return nil, ErrNoFootprints
	}
	return fps, nil
}

// ParseFloors converts an NFloors cell to a floor count. Empty, NaN,
// non-numeric and sub-one values give 1; fractions truncate.
func ParseFloors(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	if v < 1 || v > math.MaxInt32 {
		return 1
	}
	return int(v)
}
