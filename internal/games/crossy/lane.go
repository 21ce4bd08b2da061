package crossy

import (
	"fmt"
	"slices"
	"time"
)

// Kind names a lane variant.
type Kind string

const (
	KindGrass  Kind = "grass"
	KindForest Kind = "forest"
	KindLog    Kind = "log"
	KindAnimal Kind = "animal"
)

// Lane is one generated row of the world.
// The concrete types are *GrassLane, *ForestLane, *LogLane and *AnimalLane.
type Lane interface {
	Kind() Kind
	lane()
}

// GrassLane has no obstacles.
type GrassLane struct{}

func (*GrassLane) Kind() Kind { return KindGrass }
func (*GrassLane) lane()      {}

// Tree is an impassable forest tile.
type Tree struct {
	Tile   int
	Height int
}

// CollectedCorn records a pickup so the renderer can play the despawn.
type CollectedCorn struct {
	Tile int
	At   time.Time
}

// ForestLane holds static trees and collectible corn.
// Corn and Collected are the only fields that change after generation.
type ForestLane struct {
	Trees     []Tree
	Corn      []int
	Collected []CollectedCorn
}

func (*ForestLane) Kind() Kind { return KindForest }
func (*ForestLane) lane()      {}

// HasTree reports whether tile is blocked by a tree.
func (f *ForestLane) HasTree(tile int) bool {
	for _, t := range f.Trees {
		if t.Tile == tile {
			return true
		}
	}
	return false
}

// HasCorn reports whether uncollected corn sits on tile.
func (f *ForestLane) HasCorn(tile int) bool {
	return slices.Contains(f.Corn, tile)
}

// collect moves the corn on tile into the collected list.
// It returns false when there is nothing to collect.
func (f *ForestLane) collect(tile int, at time.Time) bool {
	i := slices.Index(f.Corn, tile)
	if i < 0 {
		return false
	}
	f.Corn = slices.Delete(f.Corn, i, i+1)
	f.Collected = append(f.Collected, CollectedCorn{Tile: tile, At: at})
	return true
}

// pruneCollected drops records collected before cutoff.
func (f *ForestLane) pruneCollected(cutoff time.Time) {
	f.Collected = slices.DeleteFunc(f.Collected, func(c CollectedCorn) bool {
		return c.At.Before(cutoff)
	})
}

// Segment is a run of Length tiles starting at Index at generation time.
type Segment struct {
	Index  int
	Length int
}

// Covers reports whether the segment occupies tile at its spawn position.
func (s Segment) Covers(tile int) bool {
	return tile >= s.Index && tile < s.Index+s.Length
}

// LogLane is a river crossed by floating logs.
type LogLane struct {
	Rightward bool
	Speed     float64 // Tiles per second
	Logs      []Segment
}

func (*LogLane) Kind() Kind { return KindLog }
func (*LogLane) lane()      {}

// Animal is a moving road hazard.
type Animal struct {
	Segment
	Species string
}

// AnimalLane is a road crossed by animals.
type AnimalLane struct {
	Rightward bool
	Speed     float64
	Animals   []Animal
}

func (*AnimalLane) Kind() Kind { return KindAnimal }
func (*AnimalLane) lane()      {}

// Segments returns the animal bodies as plain segments.
func (a *AnimalLane) Segments() []Segment {
	out := make([]Segment, len(a.Animals))
	for i, an := range a.Animals {
		out[i] = an.Segment
	}
	return out
}

var speciesLength = map[string]int{
	"cow":   2,
	"horse": 2,
	"pig":   1,
	"sheep": 1,
}

// SpeciesLength returns how many tiles an animal of species occupies.
// Unknown species take one tile.
func SpeciesLength(species string) int {
	if n, ok := speciesLength[species]; ok {
		return n
	}
	return 1
}

// checkLane verifies the placement rules every generated lane must satisfy.
func checkLane(l Lane, minTile, maxTile int) error {
	width := maxTile - minTile + 1
	inRange := func(tile int) bool { return tile >= minTile && tile <= maxTile }

	switch v := l.(type) {
	case *GrassLane:
		return nil

	case *ForestLane:
		if len(v.Trees) >= width {
			return fmt.Errorf("forest lane: %d trees leave no free tile", len(v.Trees))
		}
		trees := make(map[int]bool, len(v.Trees))
		for _, t := range v.Trees {
			if !inRange(t.Tile) {
				return fmt.Errorf("forest lane: tree at %d outside [%d, %d]", t.Tile, minTile, maxTile)
			}
			if trees[t.Tile] {
				return fmt.Errorf("forest lane: duplicate tree at %d", t.Tile)
			}
			if t.Height <= 0 {
				return fmt.Errorf("forest lane: tree at %d has height %d", t.Tile, t.Height)
			}
			trees[t.Tile] = true
		}
		corn := make(map[int]bool, len(v.Corn))
		for _, c := range v.Corn {
			if !inRange(c) {
				return fmt.Errorf("forest lane: corn at %d outside [%d, %d]", c, minTile, maxTile)
			}
			if trees[c] {
				return fmt.Errorf("forest lane: corn and tree share tile %d", c)
			}
			if corn[c] {
				return fmt.Errorf("forest lane: duplicate corn at %d", c)
			}
			corn[c] = true
		}
		return nil

	case *LogLane:
		if v.Speed <= 0 {
			return fmt.Errorf("log lane: speed %v is not positive", v.Speed)
		}
		return checkSegments("log lane", v.Logs, minTile, maxTile)

	case *AnimalLane:
		if v.Speed <= 0 {
			return fmt.Errorf("animal lane: speed %v is not positive", v.Speed)
		}
		return checkSegments("animal lane", v.Segments(), minTile, maxTile)

	default:
		return fmt.Errorf("unknown lane type %T", l)
	}
}

func checkSegments(what string, segs []Segment, minTile, maxTile int) error {
	if len(segs) == 0 {
		return fmt.Errorf("%s: no segments", what)
	}
	occupied := make(map[int]bool)
	for _, s := range segs {
		if s.Length <= 0 {
			return fmt.Errorf("%s: segment at %d has length %d", what, s.Index, s.Length)
		}
		last := s.Index + s.Length - 1
		if s.Index < minTile || last > maxTile {
			return fmt.Errorf("%s: segment [%d, %d] outside [%d, %d]", what, s.Index, last, minTile, maxTile)
		}
		for tile := s.Index; tile <= last; tile++ {
			if occupied[tile] {
				return fmt.Errorf("%s: segments overlap at %d", what, tile)
			}
			occupied[tile] = true
		}
	}
	if len(occupied) >= maxTile-minTile+1 {
		return fmt.Errorf("%s: no free tile", what)
	}
	return nil
}
