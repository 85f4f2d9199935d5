// Per-run frame statistics for the interactive pipeline
package metrics

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// FrameStats accumulates transform latency and detection counts
type FrameStats struct {
	mu           sync.Mutex
	started      time.Time
	frames       int
	framesByMode map[string]int
	totalLatency time.Duration
	maxLatency   time.Duration
	detections   int
	now          func() time.Time
}

// Snapshot is a point-in-time copy of FrameStats
type Snapshot struct {
	Frames       int
	FramesByMode map[string]int
	MeanLatency  time.Duration
	MaxLatency   time.Duration
	Detections   int
	Elapsed      time.Duration
	FPS          float64
}

func NewFrameStats() *FrameStats {
	return newFrameStats(time.Now)
}

func newFrameStats(now func() time.Time) *FrameStats {
	return &FrameStats{
		started:      now(),
		framesByMode: make(map[string]int),
		now:          now,
	}
}

// Observe records one transformed frame
func (s *FrameStats) Observe(mode string, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	s.framesByMode[mode]++
	s.totalLatency += latency
	if latency > s.maxLatency {
		s.maxLatency = latency
	}
}

// AddDetections records the number of boxes found in one frame
func (s *FrameStats) AddDetections(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detections += n
}

func (s *FrameStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Frames:       s.frames,
		FramesByMode: make(map[string]int, len(s.framesByMode)),
		MaxLatency:   s.maxLatency,
		Detections:   s.detections,
		Elapsed:      s.now().Sub(s.started),
	}
	for mode, n := range s.framesByMode {
		snap.FramesByMode[mode] = n
	}
	if s.frames > 0 {
		snap.MeanLatency = s.totalLatency / time.Duration(s.frames)
	}
	if seconds := snap.Elapsed.Seconds(); seconds > 0 {
		snap.FPS = float64(s.frames) / seconds
	}
	return snap
}

// Fields renders the snapshot for structured logging
func (s Snapshot) Fields() logrus.Fields {
	return logrus.Fields{
		"frames":          s.Frames,
		"frames_by_mode":  s.FramesByMode,
		"mean_latency_ms": float64(s.MeanLatency.Microseconds()) / 1000,
		"max_latency_ms":  float64(s.MaxLatency.Microseconds()) / 1000,
		"detections":      s.Detections,
		"elapsed":         s.Elapsed.String(),
		"fps":             s.FPS,
	}
}
