package tilemap

// PopupType is the event triggered when a player lands on a tile.
type PopupType uint8

// Popup types.
const (
	PopupLuckySpace PopupType = iota
	PopupStar1
	PopupStar2
	PopupStarSteal
	PopupShop1
	PopupShop2
	PopupShop3
)

// String returns the name used by the map file format.
func (p PopupType) String() string {
	switch p {
	case PopupLuckySpace:
		return "lucky-space"
	case PopupStar1:
		return "star-1"
	case PopupStar2:
		return "star-2"
	case PopupStarSteal:
		return "star-steal"
	case PopupShop1:
		return "shop-1"
	case PopupShop2:
		return "shop-2"
	case PopupShop3:
		return "shop-3"
	default:
		return "unknown"
	}
}

// ParsePopupType is the inverse of PopupType.String.
func ParsePopupType(s string) (PopupType, bool) {
	for p := PopupLuckySpace; p <= PopupShop3; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// TileAnimation attaches a tile to a named animation group.
// States are kept as decoded key/value maps; the editor does not interpret them.
type TileAnimation struct {
	ID     string
	States []map[string]any
}

// TileData is one cell of the map.
type TileData struct {
	Height      TileHeight
	Connections ConnectionMap
	Materials   MaterialMap

	Popup               *PopupType
	Coins               *int
	WalkOver            bool
	SilverStarSpawnable bool
	Animation           *TileAnimation
}

// NewTileData returns a void tile with default connections and materials.
func NewTileData() TileData {
	return TileData{Materials: MaterialMap{Walls: DefaultWallMaterials()}}
}

// IsRamp reports whether the tile top is sloped.
func (t *TileData) IsRamp() bool {
	return t.Height.IsRamp()
}

// IsVoid reports whether the cell holds no tile.
func (t *TileData) IsVoid() bool {
	return t.Height.IsVoid()
}

// AnimationID returns the animation group id, or "" when the tile is not animated.
func (t *TileData) AnimationID() string {
	if t.Animation == nil {
		return ""
	}
	return t.Animation.ID
}
