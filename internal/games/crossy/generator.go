package crossy

import (
	"math/rand"

	"github.com/vovakirdan/crossy-arcade/internal/config"
)

// Generator synthesizes lanes from a seeded RNG.
// Each lane depends only on its own draws and its index, never on earlier lanes.
type Generator struct {
	rng        *rand.Rand
	cfg        *config.CrossyConfig
	difficulty *config.DifficultyManager
	next       int // Index of the next lane to generate
}

// NewGenerator creates a generator with the given RNG seed.
func NewGenerator(seed int64, cfg *config.CrossyConfig, diff *config.DifficultyManager) *Generator {
	g := &Generator{
		cfg:        cfg,
		difficulty: diff,
	}
	g.Reset(seed)
	return g
}

// Reset reseeds the RNG and restarts lane numbering.
func (g *Generator) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.next = 0
}

// Next returns the index the next generated lane will get.
func (g *Generator) Next() int {
	return g.next
}

// Generate returns count new lanes.
// Generation never fails: a lane that cannot satisfy the placement rules
// after max_attempts draws is replaced with grass.
func (g *Generator) Generate(count int) []Lane {
	lanes := make([]Lane, 0, max(count, 0))
	for i := 0; i < count; i++ {
		lanes = append(lanes, g.generateLane(g.next))
		g.next++
	}
	return lanes
}

func (g *Generator) generateLane(index int) Lane {
	if index < g.cfg.Lanes.SafeLanes {
		return &GrassLane{}
	}

	attempts := max(g.cfg.Lanes.MaxAttempts, 1)
	for range attempts {
		l := g.draw(index)
		if checkLane(l, g.cfg.Lanes.MinTile, g.cfg.Lanes.MaxTile) == nil {
			return l
		}
	}
	return &GrassLane{}
}

func (g *Generator) draw(index int) Lane {
	switch g.pickKind() {
	case KindForest:
		return g.forest(index)
	case KindLog:
		return g.logs(index)
	case KindAnimal:
		return g.animals(index)
	default:
		return &GrassLane{}
	}
}

// pickKind makes a weighted choice among the lane kinds.
func (g *Generator) pickKind() Kind {
	w := g.cfg.Lanes.Weights
	r := g.rng.Float64() * w.Total()
	switch {
	case r < w.Grass:
		return KindGrass
	case r < w.Grass+w.Forest:
		return KindForest
	case r < w.Grass+w.Forest+w.Log:
		return KindLog
	default:
		return KindAnimal
	}
}

func (g *Generator) forest(index int) *ForestLane {
	fc := g.cfg.Forest
	minTile := g.cfg.Lanes.MinTile
	width := g.width()

	n := g.between(fc.MinTrees, fc.MaxTrees)
	n = g.difficulty.Crowding(n, index, 0)
	n = min(n, width-1)

	// One permutation yields disjoint tree and corn tiles.
	perm := g.rng.Perm(width)

	lane := &ForestLane{Trees: make([]Tree, 0, n)}
	for _, p := range perm[:n] {
		lane.Trees = append(lane.Trees, Tree{
			Tile:   minTile + p,
			Height: g.between(fc.MinHeight, fc.MaxHeight),
		})
	}

	if fc.MaxCorn > 0 && g.rng.Float64() < fc.CornChance {
		k := min(1+g.rng.Intn(fc.MaxCorn), width-n)
		for _, p := range perm[n : n+k] {
			lane.Corn = append(lane.Corn, minTile+p)
		}
	}
	return lane
}

func (g *Generator) logs(index int) *LogLane {
	tc := g.cfg.Traffic
	lane := &LogLane{
		Rightward: g.rng.Intn(2) == 1,
		Speed:     g.speed(index),
	}
	g.placeSegments(func(room int) (int, bool) {
		n := min(g.between(tc.MinLogLength, tc.MaxLogLength), room)
		return n, n > 0
	}, func(s Segment) {
		lane.Logs = append(lane.Logs, s)
	})
	return lane
}

func (g *Generator) animals(index int) *AnimalLane {
	lane := &AnimalLane{
		Rightward: g.rng.Intn(2) == 1,
		Speed:     g.speed(index),
	}
	var species string
	g.placeSegments(func(room int) (int, bool) {
		var ok bool
		species, ok = g.pickSpecies(room)
		return SpeciesLength(species), ok
	}, func(s Segment) {
		lane.Animals = append(lane.Animals, Animal{Segment: s, Species: species})
	})
	return lane
}

// pickSpecies chooses a species no longer than room tiles.
func (g *Generator) pickSpecies(room int) (string, bool) {
	fits := make([]string, 0, len(g.cfg.Traffic.Species))
	for _, s := range g.cfg.Traffic.Species {
		if SpeciesLength(s) <= room {
			fits = append(fits, s)
		}
	}
	if len(fits) == 0 {
		return "", false
	}
	return fits[g.rng.Intn(len(fits))], true
}

// placeSegments spreads segments evenly across the lane with jitter.
// The lane is split into equal slots; each segment sits inside its slot and
// leaves at least the slot's last tile free, so every lane keeps a gap.
// size reports the length of the next segment given the room left in a slot.
func (g *Generator) placeSegments(size func(room int) (int, bool), add func(Segment)) {
	tc := g.cfg.Traffic
	width := g.width()

	n := g.between(tc.MinSegments, tc.MaxSegments)
	n = max(config.MinSegmentsPerLane, min(n, config.MaxSegmentsPerLane, width/2))
	slot := width / n

	for i := 0; i < n; i++ {
		length, ok := size(slot - 1)
		if !ok || length <= 0 || length > slot-1 {
			continue
		}
		jitter := g.rng.Intn(slot - length)
		add(Segment{
			Index:  g.cfg.Lanes.MinTile + i*slot + jitter,
			Length: length,
		})
	}
}

// speed draws a base speed and scales it by the lane's index.
func (g *Generator) speed(index int) float64 {
	tc := g.cfg.Traffic
	base := tc.MinSpeed + g.rng.Float64()*(tc.MaxSpeed-tc.MinSpeed)
	return g.difficulty.Speed(base, index, 0)
}

// between returns a random int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) width() int {
	return g.cfg.Lanes.MaxTile - g.cfg.Lanes.MinTile + 1
}
