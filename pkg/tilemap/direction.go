package tilemap

import "fmt"

// Direction is one of the four cardinal sides of a tile.
// North is -Z (row y-1), West is -X (column x-1).
type Direction uint8

// Cardinal directions.
const (
	West Direction = iota
	East
	North
	South
)

// ClockwiseDirections lists every direction starting at North.
var ClockwiseDirections = [4]Direction{North, East, South, West}

// Offset returns the grid delta to the neighbor on side d.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case West:
		return -1, 0
	case East:
		return 1, 0
	case North:
		return 0, -1
	case South:
		return 0, 1
	}
	panic(fmt.Sprintf("tilemap: invalid direction %d", d))
}

// Opposite returns the direction facing back at this one.
func (d Direction) Opposite() Direction {
	switch d {
	case West:
		return East
	case East:
		return West
	case North:
		return South
	default:
		return North
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case West:
		return "West"
	case East:
		return "East"
	case North:
		return "North"
	case South:
		return "South"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}
