package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/meadow/config"
	"github.com/pthm-cable/meadow/sim"
	"github.com/pthm-cable/meadow/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu           sync.Mutex
	bestFitness  float64
	bestRunStats []telemetry.WindowStats
	lastQuality  float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 seconds per window
		bestFitness: math.Inf(1),
	}
}

// BestRunStats returns the window stats from the best evaluation's best seed.
func (fe *FitnessEvaluator) BestRunStats() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRunStats
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// warmupSec skips the opening seconds of a run: the field fills at one
// spawn per species per tick, so early windows are not representative.
const warmupSec = 5.0

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before the last deer died (or maxTicks if some survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness     float64
	quality     float64
	windowStats []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative herd survival: the longer deer last against the
// wolves, the lower (better) the fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, sd int64) {
			defer wg.Done()
			result := fe.runSimulation(x, sd)
			quality := fe.computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:     fe.computeFitness(result),
				quality:     quality,
				windowStats: result.windowStats,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	var bestSeedFitness float64 = math.Inf(1)
	var bestSeedStats []telemetry.WindowStats

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedStats = r.windowStats
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestRunStats = bestSeedStats
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Herds never respawn, so the run ends when the last deer dies or at
// maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	// Create a fresh config copy and apply parameters
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	s := sim.NewSimulationWithOptions(sim.Options{
		Seed:           seed,
		Config:         cfg,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	defer s.Close()

	// Herds seed during the opening ticks; a zero count before then is
	// not an extinction.
	warmupTicks := int32(warmupSec / cfg.Physics.DT)

	for s.Tick() < fe.maxTicks {
		s.UpdateHeadless()

		tick := s.Tick()
		if tick < warmupTicks {
			continue
		}

		if s.Deer() == 0 {
			result.survivalTicks = tick
			return result
		}
	}

	// Some deer survived the full run
	result.survivalTicks = fe.maxTicks
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	// Load fresh defaults and copy base values
	cfg, _ := config.Load("")

	cfg.Screen = fe.baseConfig.Screen
	cfg.Field = fe.baseConfig.Field
	cfg.Physics = fe.baseConfig.Physics
	cfg.Hare = fe.baseConfig.Hare
	cfg.Wolf = fe.baseConfig.Wolf
	cfg.Deer = fe.baseConfig.Deer
	cfg.Player = fe.baseConfig.Player
	cfg.Bullet = fe.baseConfig.Bullet
	cfg.Telemetry = fe.baseConfig.Telemetry

	// Derived values must track the copied sections
	cfg.Derived.DT32 = float32(cfg.Physics.DT)
	cfg.Derived.ScreenW32 = float32(cfg.Screen.Width)
	cfg.Derived.ScreenH32 = float32(cfg.Screen.Height)
	cfg.Derived.FieldW32 = float32(cfg.Screen.Width - cfg.Field.MarginX)
	cfg.Derived.FieldH32 = float32(cfg.Screen.Height - cfg.Field.MarginY)

	return cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// parameter sets with similar survival.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightHerds     = 0.40
	qualityWeightHares     = 0.30
	qualityWeightStability = 0.30

	qualityWarmupWindows = 2 // skip first N windows (warmup)
)

// computeQuality computes herd quality ∈ [0, 1] from window stats.
// It rewards survival spread across all herds rather than one lucky herd,
// a hare population that stays topped up under predation, and stable
// counts over time.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	// Collect valid windows (past warmup, herd still present)
	valid := windows[qualityWarmupWindows:]

	var herdSum, hareSum float64
	var count int

	deerCounts := make([]float64, 0, len(valid))
	hareCounts := make([]float64, 0, len(valid))

	groupTarget := float64(fe.baseConfig.Deer.GroupNumber)
	hareTarget := float64(fe.baseConfig.Hare.MaxNumber)

	for _, w := range valid {
		if w.DeerCount == 0 {
			continue
		}

		deerCounts = append(deerCounts, float64(w.DeerCount))
		hareCounts = append(hareCounts, float64(w.HareCount))

		// 1. Herd spread score: every group keeping members alive
		herdSum += float64(w.DeerGroupCount) / groupTarget

		// 2. Hare resilience score: population near target despite hunting
		hareSum += float64(w.HareCount) / hareTarget

		count++
	}

	// No valid windows → zero quality
	if count == 0 {
		return 0
	}

	herdScore := clamp01(herdSum / float64(count))
	hareScore := clamp01(hareSum / float64(count))

	// 3. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(deerCounts) >= 2 {
		cvDeer := cv(deerCounts)
		cvHare := cv(hareCounts)
		stabilityScore = math.Exp(-(cvDeer*cvDeer + cvHare*cvHare))
	}

	quality := qualityWeightHerds*herdScore +
		qualityWeightHares*hareScore +
		qualityWeightStability*stabilityScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
