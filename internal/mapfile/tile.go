package mapfile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

type tileJSON struct {
	Ramp                bool               `json:"ramp"`
	Height              json.RawMessage    `json:"height"`
	Connections         connectionsJSON    `json:"connections"`
	Material            *int               `json:"material"`
	WallMaterial        *wallMaterialsJSON `json:"wallMaterial"`
	Popup               *string            `json:"popup"`
	Coins               *int               `json:"coins"`
	WalkOver            bool               `json:"walkOver"`
	SilverStarSpawnable bool               `json:"silverStarSpawnable"`
	Animation           *animationJSON     `json:"animation"`
}

type rampJSON struct {
	Dir string   `json:"dir"`
	Pos *float64 `json:"pos"`
	Neg *float64 `json:"neg"`
}

type connectionsJSON struct {
	N json.RawMessage `json:"n"`
	E json.RawMessage `json:"e"`
	S json.RawMessage `json:"s"`
	W json.RawMessage `json:"w"`
}

type wallMaterialsJSON struct {
	N json.RawMessage `json:"n"`
	E json.RawMessage `json:"e"`
	S json.RawMessage `json:"s"`
	W json.RawMessage `json:"w"`
}

type animationJSON struct {
	ID     string           `json:"id"`
	States []map[string]any `json:"states"`
}

func (t *tileJSON) tile() (tilemap.TileData, error) {
	out := tilemap.NewTileData()

	h, err := decodeHeight(t.Ramp, t.Height)
	if err != nil {
		return out, err
	}
	out.Height = h

	conns := []struct {
		d   tilemap.Direction
		raw json.RawMessage
	}{
		{tilemap.North, t.Connections.N},
		{tilemap.East, t.Connections.E},
		{tilemap.South, t.Connections.S},
		{tilemap.West, t.Connections.W},
	}
	for _, c := range conns {
		conn, err := decodeConnection(c.raw)
		if err != nil {
			return out, fmt.Errorf("%s: %w", c.d, err)
		}
		out.Connections.Set(c.d, conn)
	}

	if t.Material != nil {
		m, ok := tilemap.MaterialFromIndex(*t.Material)
		if !ok {
			return out, fmt.Errorf("top %d: %w", *t.Material, ErrBadMaterial)
		}
		out.Materials.Top = m
	}
	if w := t.WallMaterial; w != nil {
		walls := []struct {
			d   tilemap.Direction
			raw json.RawMessage
		}{
			{tilemap.North, w.N},
			{tilemap.East, w.E},
			{tilemap.South, w.S},
			{tilemap.West, w.W},
		}
		for _, wall := range walls {
			if len(wall.raw) == 0 {
				continue
			}
			stack, err := decodeWallStack(wall.raw)
			if err != nil {
				return out, fmt.Errorf("%s wall: %w", wall.d, err)
			}
			out.Materials.Walls.Set(wall.d, stack)
		}
	}

	if t.Popup != nil {
		p, ok := tilemap.ParsePopupType(*t.Popup)
		if !ok {
			return out, fmt.Errorf("%q: %w", *t.Popup, ErrBadPopup)
		}
		out.Popup = &p
	}
	out.Coins = t.Coins
	out.WalkOver = t.WalkOver
	out.SilverStarSpawnable = t.SilverStarSpawnable
	if t.Animation != nil {
		out.Animation = &tilemap.TileAnimation{ID: t.Animation.ID, States: t.Animation.States}
	}
	return out, nil
}

// decodeHeight reads the flattened height union. A flat height of 0 is the
// file format's marker for an empty cell and decodes as void.
func decodeHeight(ramp bool, raw json.RawMessage) (tilemap.TileHeight, error) {
	if len(raw) == 0 {
		return tilemap.TileHeight{}, fmt.Errorf("missing: %w", ErrBadHeight)
	}
	if !ramp {
		var h float64
		if err := json.Unmarshal(raw, &h); err != nil {
			return tilemap.TileHeight{}, fmt.Errorf("flat height %s: %w", raw, ErrBadHeight)
		}
		if h == 0 {
			return tilemap.TileHeight{}, nil
		}
		return tilemap.Flat(h), nil
	}

	var r rampJSON
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil || r.Pos == nil || r.Neg == nil {
		return tilemap.TileHeight{}, fmt.Errorf("ramp %s: %w", raw, ErrBadHeight)
	}
	var dir tilemap.RampDirection
	switch r.Dir {
	case "h":
		dir = tilemap.Horizontal
	case "v":
		dir = tilemap.Vertical
	default:
		return tilemap.TileHeight{}, fmt.Errorf("ramp direction %q: %w", r.Dir, ErrBadHeight)
	}
	return tilemap.Ramp(dir, *r.Pos, *r.Neg), nil
}

// decodeConnection reads true, false or "lock". A missing value is passable.
func decodeConnection(raw json.RawMessage) (tilemap.Connection, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return tilemap.Connection{}, nil
	}
	var passable bool
	if err := json.Unmarshal(raw, &passable); err == nil {
		return tilemap.Unconditional(passable), nil
	}
	var cond string
	if err := json.Unmarshal(raw, &cond); err == nil && cond == "lock" {
		return tilemap.Conditional(tilemap.Lock), nil
	}
	return tilemap.Connection{}, fmt.Errorf("%s: %w", raw, ErrBadConnection)
}

// decodeWallStack reads one material or a non-empty list of them.
func decodeWallStack(raw json.RawMessage) ([]tilemap.Material, error) {
	var indices []int
	var one int
	if err := json.Unmarshal(raw, &one); err == nil {
		indices = []int{one}
	} else if err := json.Unmarshal(raw, &indices); err != nil {
		return nil, fmt.Errorf("%s: %w", raw, ErrBadMaterial)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("empty stack: %w", ErrBadMaterial)
	}

	stack := make([]tilemap.Material, len(indices))
	for i, idx := range indices {
		m, ok := tilemap.MaterialFromIndex(idx)
		if !ok {
			return nil, fmt.Errorf("%d: %w", idx, ErrBadMaterial)
		}
		stack[i] = m
	}
	return stack, nil
}
