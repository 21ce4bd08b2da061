package crossy

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/crossy-arcade/internal/config"
)

func newGenerator(seed int64, cfg config.CrossyConfig) *Generator {
	return NewGenerator(seed, &cfg, config.NewDifficultyManager(cfg.Difficulty))
}

func TestGeneratedLanesRespectPlacementRules(t *testing.T) {
	for _, preset := range config.Presets {
		cfg := config.DefaultCrossyConfig()
		config.ApplyCrossyPreset(&cfg, preset)
		minT, maxT := cfg.Lanes.MinTile, cfg.Lanes.MaxTile

		for seed := int64(1); seed <= 25; seed++ {
			lanes := newGenerator(seed, cfg).Generate(200)
			if len(lanes) != 200 {
				t.Fatalf("Generate(200) returned %d lanes", len(lanes))
			}
			for i, l := range lanes {
				if err := checkLane(l, minT, maxT); err != nil {
					t.Fatalf("preset %s seed %d lane %d: %v", preset, seed, i, err)
				}
				assertLaneProperties(t, l, minT, maxT)
				assertSegmentCount(t, l, cfg.Traffic)
			}
		}
	}
}

func TestSegmentCountPerPreset(t *testing.T) {
	tests := []struct {
		preset   config.DifficultyPreset
		min, max int
	}{
		{config.DifficultyEasy, 2, 4},
		{config.DifficultyNormal, 2, 4},
		{config.DifficultyHard, 3, 4},
		{config.DifficultyFixed, 2, 4},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := config.DefaultCrossyConfig()
			config.ApplyCrossyPreset(&cfg, tc.preset)
			if cfg.Traffic.MinSegments != tc.min || cfg.Traffic.MaxSegments != tc.max {
				t.Fatalf("segments = [%d, %d], expected [%d, %d]",
					cfg.Traffic.MinSegments, cfg.Traffic.MaxSegments, tc.min, tc.max)
			}
			for seed := int64(1); seed <= 10; seed++ {
				for _, l := range newGenerator(seed, cfg).Generate(100) {
					assertSegmentCount(t, l, cfg.Traffic)
				}
			}
		})
	}
}

// assertSegmentCount checks log and animal lanes against the per-lane bounds.
func assertSegmentCount(t *testing.T, l Lane, tc config.CrossyTraffic) {
	t.Helper()
	var n int
	switch v := l.(type) {
	case *LogLane:
		n = len(v.Logs)
	case *AnimalLane:
		n = len(v.Animals)
	default:
		return
	}
	if n < config.MinSegmentsPerLane || n > config.MaxSegmentsPerLane {
		t.Fatalf("%T has %d segments, expected %d..%d", l, n, config.MinSegmentsPerLane, config.MaxSegmentsPerLane)
	}
	if n < tc.MinSegments || n > tc.MaxSegments {
		t.Fatalf("%T has %d segments, expected %d..%d", l, n, tc.MinSegments, tc.MaxSegments)
	}
}

// assertLaneProperties re-checks bounds, gaps and disjointness directly.
func assertLaneProperties(t *testing.T, l Lane, minT, maxT int) {
	t.Helper()
	inRange := func(tile int) bool { return tile >= minT && tile <= maxT }

	switch v := l.(type) {
	case *ForestLane:
		trees := map[int]bool{}
		for _, tr := range v.Trees {
			if !inRange(tr.Tile) {
				t.Fatalf("tree at %d out of bounds", tr.Tile)
			}
			trees[tr.Tile] = true
		}
		for _, c := range v.Corn {
			if !inRange(c) {
				t.Fatalf("corn at %d out of bounds", c)
			}
			if trees[c] {
				t.Fatalf("corn and tree share tile %d", c)
			}
		}
		if len(trees) > maxT-minT {
			t.Fatalf("forest lane has no free tile")
		}

	case *LogLane:
		assertGap(t, v.Logs, minT, maxT)

	case *AnimalLane:
		assertGap(t, v.Segments(), minT, maxT)
		for _, a := range v.Animals {
			if a.Length != SpeciesLength(a.Species) {
				t.Fatalf("%s has length %d", a.Species, a.Length)
			}
		}
	}
}

func assertGap(t *testing.T, segs []Segment, minT, maxT int) {
	t.Helper()
	free := 0
	for tile := minT; tile <= maxT; tile++ {
		covered := false
		for _, s := range segs {
			if s.Index < minT || s.Index+s.Length-1 > maxT {
				t.Fatalf("segment %+v out of bounds", s)
			}
			if s.Covers(tile) {
				covered = true
			}
		}
		if !covered {
			free++
		}
	}
	if free == 0 {
		t.Fatal("moving lane has no free tile at spawn")
	}
	if len(segs) < 1 {
		t.Fatal("moving lane has no segments")
	}
}

func TestFirstLaneIsSafe(t *testing.T) {
	cfg := config.DefaultCrossyConfig()
	for seed := int64(0); seed < 20; seed++ {
		lanes := newGenerator(seed, cfg).Generate(3)
		if _, ok := lanes[0].(*GrassLane); !ok {
			t.Fatalf("seed %d: first lane is %s, expected grass", seed, lanes[0].Kind())
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	cfg := config.DefaultCrossyConfig()
	a := newGenerator(777, cfg).Generate(60)
	b := newGenerator(777, cfg).Generate(60)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different lanes")
	}

	g := newGenerator(777, cfg)
	g.Generate(10)
	g.Reset(777)
	if g.Next() != 0 {
		t.Errorf("Next() after Reset = %d, expected 0", g.Next())
	}
	if c := g.Generate(60); !reflect.DeepEqual(a, c) {
		t.Fatal("Reset did not restart the sequence")
	}
}

func TestGeneratorFallsBackToGrass(t *testing.T) {
	cfg := config.DefaultCrossyConfig()
	cfg.Lanes.Weights = config.LaneWeights{Animal: 1}
	cfg.Traffic.Species = nil // no animal can be placed

	for i, l := range newGenerator(5, cfg).Generate(30) {
		if _, ok := l.(*GrassLane); !ok {
			t.Fatalf("lane %d is %s, expected grass fallback", i, l.Kind())
		}
	}
}

func TestSpeedGrowsWithLaneIndex(t *testing.T) {
	cfg := config.DefaultCrossyConfig()
	cfg.Lanes.Weights = config.LaneWeights{Log: 1, Animal: 1}

	mean := func(lanes []Lane) float64 {
		sum, n := 0.0, 0
		for _, l := range lanes {
			switch v := l.(type) {
			case *LogLane:
				sum += v.Speed
				n++
			case *AnimalLane:
				sum += v.Speed
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}

	var early, late float64
	for seed := int64(1); seed <= 10; seed++ {
		lanes := newGenerator(seed, cfg).Generate(400)
		early += mean(lanes[:100])
		late += mean(lanes[300:])
	}
	if late <= early {
		t.Errorf("mean speed did not grow: early %.2f, late %.2f", early/10, late/10)
	}
}

func TestCrowdingAddsTrees(t *testing.T) {
	cfg := config.DefaultCrossyConfig()
	cfg.Lanes.Weights = config.LaneWeights{Forest: 1}
	cfg.Difficulty.InitialLevel = 1.0

	for i, l := range newGenerator(3, cfg).Generate(50)[1:] {
		f, ok := l.(*ForestLane)
		if !ok {
			t.Fatalf("lane %d is %s, expected forest", i+1, l.Kind())
		}
		if len(f.Trees) < cfg.Forest.MinTrees+cfg.Difficulty.Scaling.GapReduction {
			t.Fatalf("lane %d has %d trees at max difficulty", i+1, len(f.Trees))
		}
	}
}

func TestCheckLaneRejectsBrokenLanes(t *testing.T) {
	tests := []struct {
		name string
		lane Lane
	}{
		{"tree out of bounds", &ForestLane{Trees: []Tree{{Tile: 9, Height: 1}}}},
		{"corn on tree", &ForestLane{Trees: []Tree{{Tile: 2, Height: 1}}, Corn: []int{2}}},
		{"duplicate corn", &ForestLane{Corn: []int{1, 1}}},
		{"zero height", &ForestLane{Trees: []Tree{{Tile: 0}}}},
		{"log past the edge", &LogLane{Speed: 1, Logs: []Segment{{Index: 7, Length: 3}}}},
		{"overlapping logs", &LogLane{Speed: 1, Logs: []Segment{{Index: 0, Length: 3}, {Index: 2, Length: 2}}}},
		{"no logs", &LogLane{Speed: 1}},
		{"still animals", &AnimalLane{Animals: []Animal{{Segment: Segment{Index: 0, Length: 1}, Species: "pig"}}}},
	}

	full := make([]Segment, 0, 17)
	for tile := -8; tile <= 8; tile++ {
		full = append(full, Segment{Index: tile, Length: 1})
	}
	tests = append(tests, struct {
		name string
		lane Lane
	}{"no gap", &LogLane{Speed: 1, Logs: full}})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := checkLane(tc.lane, -8, 8); err == nil {
				t.Error("expected checkLane to fail")
			}
		})
	}

	if err := checkLane(&GrassLane{}, -8, 8); err != nil {
		t.Errorf("grass lane rejected: %v", err)
	}
}
