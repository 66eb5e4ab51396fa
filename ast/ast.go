// Package ast defines the TDLang abstract syntax tree: a flat sequence of
// declarations, each a sum-type variant discriminated by a Go type switch.
package ast

// Decl is the sum type over top-level declarations. It is implemented only
// by the variants below; every pass that walks a Program is expected to
// exhaustively switch over them.
type Decl interface {
	declNode()
}

// Point is an (x, y) grid coordinate, used by Map.Path and Place.
type Point struct {
	X, Y int
}

// Map declares the grid and enemy path. Several maps with distinct names
// may be declared; placements are checked against the most recent one. The
// AST itself does not enforce name uniqueness.
type Map struct {
	Name   string
	Width  int
	Height int
	Path   []Point
}

// Enemy declares one enemy kind.
type Enemy struct {
	Name   string
	HP     int
	Speed  float64
	Reward int
}

// Tower declares one tower kind.
type Tower struct {
	Name     string
	Range    int
	Damage   int
	FireRate float64
	Cost     int
}

// Spawn is one timed enemy release within a Wave.
type Spawn struct {
	EnemyType string
	Count     int
	Start     int
	Interval  int
}

// Wave declares a named, ordered sequence of spawns.
type Wave struct {
	Name   string
	Spawns []Spawn
}

// Place declares a concrete tower placement on the most recently declared
// map.
type Place struct {
	TowerType string
	X, Y      int
}

func (*Map) declNode()   {}
func (*Enemy) declNode() {}
func (*Tower) declNode() {}
func (*Wave) declNode()  {}
func (*Place) declNode() {}

// Program is an ordered sequence of declarations; declaration order is
// observable by every later phase.
type Program struct {
	Decls []Decl
}
