package network

import (
	"slices"
	"sync"
	"time"
)

const (
	// outlierFactor and outlierFloor drop samples above both 2x the median and 20ms.
	outlierFactor = 2
	outlierFloor  = 20 * time.Millisecond
)

// rttWindow keeps the most recent round trips and reports their mean without spikes.
type rttWindow struct {
	mu      sync.Mutex
	size    int
	samples []time.Duration
	mean    time.Duration
}

func newRTTWindow(size int) *rttWindow {
	return &rttWindow{size: size}
}

func (w *rttWindow) Add(rtt time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples = append(w.samples, rtt)
	if over := len(w.samples) - w.size; over > 0 {
		w.samples = w.samples[over:]
	}

	kept := withoutOutliers(w.samples)
	var total time.Duration
	for _, s := range kept {
		total += s
	}
	w.mean = 0
	if len(kept) > 0 {
		w.mean = total / time.Duration(len(kept))
	}
}

// Milliseconds is the smoothed round trip.
func (w *rttWindow) Milliseconds() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return float64(w.mean) / float64(time.Millisecond)
}

func withoutOutliers(samples []time.Duration) []time.Duration {
	median := median(samples)
	kept := make([]time.Duration, 0, len(samples))
	for _, s := range samples {
		if s > outlierFactor*median && s > outlierFloor {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func median(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
