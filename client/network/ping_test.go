package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ms(v ...int) []time.Duration {
	out := make([]time.Duration, 0, len(v))
	for _, x := range v {
		out = append(out, time.Duration(x)*time.Millisecond)
	}
	return out
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []time.Duration
		want    time.Duration
	}{
		{name: "empty", samples: nil, want: 0},
		{name: "odd", samples: ms(30, 10, 20), want: 20 * time.Millisecond},
		{name: "even", samples: ms(10, 40, 20, 30), want: 25 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, median(tt.samples))
		})
	}
}

func TestWithoutOutliers(t *testing.T) {
	assert.Equal(t, ms(10, 12, 11), withoutOutliers(ms(10, 12, 300, 11)))
	// Small spikes under the floor are kept.
	assert.Equal(t, ms(1, 2, 15), withoutOutliers(ms(1, 2, 15)))
}

func TestRTTWindow(t *testing.T) {
	w := newRTTWindow(3)
	for _, d := range ms(20, 22, 24, 400) {
		w.Add(d)
	}
	// The window holds 22, 24, 400 and the spike is dropped.
	assert.InDelta(t, 23.0, w.Milliseconds(), 0.001)
}

func TestNetworkManager_RecordRTT(t *testing.T) {
	m := NewNetworkManager(NewNetworkManagerOptions{})
	for _, d := range ms(20, 22, 24, 400) {
		m.recordRTT(d)
	}
	assert.InDelta(t, 22.0, m.Ping(), 0.001)
}
