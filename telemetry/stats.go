package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	HareCount      int `csv:"hares"`
	WolfCount      int `csv:"wolves"`
	DeerCount      int `csv:"deer"`
	DeerGroupCount int `csv:"deer_groups"`

	// Events during window
	HareSpawns int `csv:"hare_spawns"`
	WolfSpawns int `csv:"wolf_spawns"`
	DeerSpawns int `csv:"deer_spawns"`

	// Hunting
	PredationKills int     `csv:"predation_kills"`
	BulletKills    int     `csv:"bullet_kills"`
	Starvations    int     `csv:"starvations"`
	ShotsFired     int     `csv:"shots_fired"`
	BulletExpiries int     `csv:"bullet_expiries"`
	HitRate        float64 `csv:"hit_rate"`

	// Speed distribution (sampled at window end)
	HareSpeedMean float64 `csv:"hare_speed_mean"`
	HareSpeedStd  float64 `csv:"hare_speed_std"`
	WolfSpeedMean float64 `csv:"wolf_speed_mean"`
	WolfSpeedStd  float64 `csv:"wolf_speed_std"`
	DeerSpeedMean float64 `csv:"deer_speed_mean"`
	DeerSpeedStd  float64 `csv:"deer_speed_std"`
}

// ComputeSpeedStats calculates mean and standard deviation of speed samples.
// Returns zeros for an empty slice; std is zero for a single sample.
func ComputeSpeedStats(values []float64) (mean, std float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("hares", s.HareCount),
		slog.Int("wolves", s.WolfCount),
		slog.Int("deer", s.DeerCount),
		slog.Int("deer_groups", s.DeerGroupCount),
		slog.Int("hare_spawns", s.HareSpawns),
		slog.Int("wolf_spawns", s.WolfSpawns),
		slog.Int("deer_spawns", s.DeerSpawns),
		slog.Int("predation_kills", s.PredationKills),
		slog.Int("bullet_kills", s.BulletKills),
		slog.Int("starvations", s.Starvations),
		slog.Int("shots_fired", s.ShotsFired),
		slog.Int("bullet_expiries", s.BulletExpiries),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("hare_speed_mean", s.HareSpeedMean),
		slog.Float64("hare_speed_std", s.HareSpeedStd),
		slog.Float64("wolf_speed_mean", s.WolfSpeedMean),
		slog.Float64("wolf_speed_std", s.WolfSpeedStd),
		slog.Float64("deer_speed_mean", s.DeerSpeedMean),
		slog.Float64("deer_speed_std", s.DeerSpeedStd),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"hares", s.HareCount,
		"wolves", s.WolfCount,
		"deer", s.DeerCount,
		"deer_groups", s.DeerGroupCount,
		"hare_spawns", s.HareSpawns,
		"wolf_spawns", s.WolfSpawns,
		"deer_spawns", s.DeerSpawns,
		"predation_kills", s.PredationKills,
		"bullet_kills", s.BulletKills,
		"starvations", s.Starvations,
		"shots_fired", s.ShotsFired,
		"bullet_expiries", s.BulletExpiries,
		"hit_rate", s.HitRate,
		"hare_speed_mean", s.HareSpeedMean,
		"wolf_speed_mean", s.WolfSpeedMean,
		"deer_speed_mean", s.DeerSpeedMean,
	)
}
