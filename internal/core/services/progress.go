package services

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// ProgressSimulator advances a cosmetic progress value on a timer.
// It is not derived from server progress and never reaches 100 by itself;
// the caller snaps to 100 when the real operation completes.
type ProgressSimulator struct {
	// Interval between ticks.
	Interval time.Duration

	// Cap is the value progress stops below.
	Cap float64

	// Step returns the increment for one tick.
	Step func() float64
}

// UploadProgress ticks every 500ms by up to 10, holding below 90.
func UploadProgress() ProgressSimulator {
	return ProgressSimulator{
		Interval: 500 * time.Millisecond,
		Cap:      90,
		Step:     func() float64 { return rand.Float64() * 10 },
	}
}

// WorkflowProgress ticks every 450ms by 2 to 8, holding below 92.
func WorkflowProgress() ProgressSimulator {
	return ProgressSimulator{
		Interval: 450 * time.Millisecond,
		Cap:      92,
		Step:     func() float64 { return 2 + rand.Float64()*6 },
	}
}

// Next returns the value after one tick. Once current reaches Cap it
// stays put; a step may overshoot Cap but never 100.
func (p ProgressSimulator) Next(current float64) float64 {
	if current >= p.Cap {
		return current
	}
	step := 0.0
	if p.Step != nil {
		step = p.Step()
	}
	return math.Min(current+step, 99)
}

// Run calls tick with each new value until ctx is cancelled.
func (p ProgressSimulator) Run(ctx context.Context, tick func(float64)) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	current := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current = p.Next(current)
			tick(current)
		}
	}
}

// ProgressComplete is the value shown once the real result arrives.
const ProgressComplete = 100.0
