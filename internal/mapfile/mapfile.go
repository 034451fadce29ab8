// Package mapfile decodes the tile grid of an MSP map file.
//
// Only the parts the mesh engine needs are read: the atlas path and the
// "data" grid. Everything else in the file is ignored.
package mapfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// Decoding errors.
var (
	ErrEmptyGrid     = errors.New("map has no tiles")
	ErrRaggedGrid    = errors.New("map rows differ in length")
	ErrBadHeight     = errors.New("invalid tile height")
	ErrBadConnection = errors.New("invalid connection")
	ErrBadMaterial   = errors.New("invalid material")
	ErrBadPopup      = errors.New("invalid popup type")
)

// Map is the decoded subset of a map file.
type Map struct {
	Atlas string
	Grid  *tilemap.Grid
}

type fileJSON struct {
	Atlas string       `json:"atlas"`
	Data  [][]tileJSON `json:"data"`
}

// Load reads and decodes the map file at path.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, nil
}

// Decode reads a map file from r.
func Decode(r io.Reader) (*Map, error) {
	var raw fileJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 || len(raw.Data[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	cols := len(raw.Data[0])
	rows := make([][]tilemap.TileData, len(raw.Data))
	for y, row := range raw.Data {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d tiles, want %d: %w", y, len(row), cols, ErrRaggedGrid)
		}
		rows[y] = make([]tilemap.TileData, cols)
		for x := range row {
			t, err := row[x].tile()
			if err != nil {
				return nil, fmt.Errorf("tile (%d, %d): %w", x, y, err)
			}
			rows[y][x] = t
		}
	}
	return &Map{Atlas: raw.Atlas, Grid: tilemap.GridFromRows(rows)}, nil
}
