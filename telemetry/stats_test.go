package telemetry

import (
	"math"
	"testing"
)

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	mean, std := ComputeSpeedStats(values)

	if math.Abs(mean-3.0) > 0.001 {
		t.Errorf("mean = %v, want 3.0", mean)
	}

	// Sample standard deviation: sqrt(10/4)
	if math.Abs(std-math.Sqrt(2.5)) > 0.001 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(2.5))
	}
}

func TestComputeSpeedStatsEmpty(t *testing.T) {
	mean, std := ComputeSpeedStats([]float64{})

	if mean != 0 || std != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeSpeedStatsSingle(t *testing.T) {
	mean, std := ComputeSpeedStats([]float64{7.5})

	if mean != 7.5 {
		t.Errorf("mean = %v, want 7.5", mean)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0 for a single sample", std)
	}
}
