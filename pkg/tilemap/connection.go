package tilemap

import "fmt"

// ConnectionCondition is the requirement attached to a conditional connection.
type ConnectionCondition uint8

// Connection conditions.
const (
	Lock ConnectionCondition = iota + 1
)

// Connection describes passability between a tile and one neighbor.
// The zero value is an unconditional, passable connection.
type Connection struct {
	condition ConnectionCondition
	blocked   bool
}

// Unconditional returns a connection that is always passable or always blocked.
func Unconditional(passable bool) Connection {
	return Connection{blocked: !passable}
}

// Conditional returns a connection gated by cond.
func Conditional(cond ConnectionCondition) Connection {
	return Connection{condition: cond}
}

// Impassible reports whether the connection is Unconditional(false).
func (c Connection) Impassible() bool {
	return c.condition == 0 && c.blocked
}

// Locked reports whether the connection is Conditional(Lock).
func (c Connection) Locked() bool {
	return c.condition == Lock
}

// Condition returns the condition of a conditional connection.
func (c Connection) Condition() (ConnectionCondition, bool) {
	return c.condition, c.condition != 0
}

// String implements fmt.Stringer.
func (c Connection) String() string {
	switch {
	case c.condition == Lock:
		return "Conditional(Lock)"
	case c.condition != 0:
		return fmt.Sprintf("Conditional(%d)", c.condition)
	default:
		return fmt.Sprintf("Unconditional(%t)", !c.blocked)
	}
}

// ConnectionMap holds one connection per side of a tile.
type ConnectionMap struct {
	North Connection
	East  Connection
	South Connection
	West  Connection
}

// Get returns the connection on side d.
func (m *ConnectionMap) Get(d Direction) Connection {
	return *m.ptr(d)
}

// Set replaces the connection on side d.
func (m *ConnectionMap) Set(d Direction, c Connection) {
	*m.ptr(d) = c
}

func (m *ConnectionMap) ptr(d Direction) *Connection {
	switch d {
	case West:
		return &m.West
	case East:
		return &m.East
	case North:
		return &m.North
	case South:
		return &m.South
	}
	panic(fmt.Sprintf("tilemap: invalid direction %d", d))
}
