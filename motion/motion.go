// Package motion samples an accelerometer source on its own goroutine and
// publishes the newest reading for synchronous, lock-free reads.
package motion

import (
	"context"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval samples at 30 Hz.
const DefaultInterval = time.Second / 30

// Acceleration is a reading in units of g along the device axes.
type Acceleration struct {
	X, Y, Z float64
}

// ClampPlanar scales X and Y down to unit length when they exceed it. Z is
// left as is.
func (a Acceleration) ClampPlanar() Acceleration {
	l := math.Hypot(a.X, a.Y)
	if l <= 1 {
		return a
	}
	return Acceleration{X: a.X / l, Y: a.Y / l, Z: a.Z}
}

type Sample struct {
	Acceleration Acceleration
	Time         time.Time
}

// Source yields the current accelerometer reading. ok is false while the
// underlying sensor has nothing to report.
type Source interface {
	Read() (Acceleration, bool)
}

// Manager polls a Source at a fixed interval while started.
type Manager struct {
	source Source
	now    func() time.Time

	latest atomic.Pointer[Sample]

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

func NewManager(source Source) *Manager {
	return &Manager{source: source, now: time.Now}
}

// Start begins sampling every interval. Calling Start on a running Manager
// restarts it with the new interval.
func (m *Manager) Start(interval time.Duration) {
	if m == nil {
		return
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	m.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == nil {
		log.Printf("motion: no source, sampling disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.interval = interval
	go m.run(ctx, interval, m.done)
}

func (m *Manager) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Manager) poll() {
	a, ok := m.source.Read()
	if !ok {
		return
	}
	m.latest.Store(&Sample{Acceleration: a, Time: m.now()})
}

// Stop halts sampling and waits for the sampler to exit. The last sample
// stays readable.
func (m *Manager) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.interval = 0
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Active reports whether the sampler goroutine is running.
func (m *Manager) Active() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Interval returns the current sampling interval, or 0 when stopped.
func (m *Manager) Interval() time.Duration {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// Latest returns the most recent sample, if any has arrived.
func (m *Manager) Latest() (Sample, bool) {
	if m == nil {
		return Sample{}, false
	}
	s := m.latest.Load()
	if s == nil {
		return Sample{}, false
	}
	return *s, true
}
