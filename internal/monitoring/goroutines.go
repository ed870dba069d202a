// Package monitoring watches process health for long-running servers.
package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
)

// GoroutineMonitor tracks goroutine counts and alerts on suspected leaks.
// Callers can register gauges (active games, open streams) that are sampled
// and logged alongside the goroutine metrics.
type GoroutineMonitor struct {
	mu             sync.RWMutex
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration
	stopChan       chan struct{}
	gauges         map[string]func() int
	logger         zerolog.Logger
}

// NewGoroutineMonitor creates a monitor with the given sampling interval and
// alert threshold.
func NewGoroutineMonitor(checkInterval time.Duration, alertThreshold int, logger zerolog.Logger) *GoroutineMonitor {
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  checkInterval,
		alertThreshold: alertThreshold,
		alertCooldown:  5 * time.Minute,
		stopChan:       make(chan struct{}),
		gauges:         make(map[string]func() int),
		logger:         logger.With().Str("component", "goroutine_monitor").Logger(),
	}
}

// RegisterGauge adds a named gauge sampled on every check
func (gm *GoroutineMonitor) RegisterGauge(name string, fn func() int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.gauges[name] = fn
}

// Start begins monitoring goroutines
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Info().
		Int("baseline", gm.baseline).
		Msg("Started goroutine monitoring")
}

// Stop stops the monitor
func (gm *GoroutineMonitor) Stop() {
	close(gm.stopChan)
}

// monitor is the main monitoring loop
func (gm *GoroutineMonitor) monitor() {
	defer func() {
		if r := recover(); r != nil {
			gm.logger.Error().
				Interface("panic", r).
				Msg("Goroutine monitor panicked - restarting")
			time.Sleep(5 * time.Second)
			go gm.monitor()
		}
	}()

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.checkGoroutines()
		case <-gm.stopChan:
			return
		}
	}
}

// checkGoroutines samples goroutine and gauge counts and alerts if needed
func (gm *GoroutineMonitor) checkGoroutines() {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}

	growth := current - gm.baseline
	growthRate := float64(growth) / float64(gm.baseline) * 100

	shouldAlert := current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown

	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	gauges := maps.Clone(gm.gauges)
	gm.mu.Unlock()

	logEvent := gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", gm.peak).
		Float64("growth_rate", growthRate)
	for name, fn := range gauges {
		logEvent = logEvent.Int(name, fn())
	}
	logEvent.Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Float64("growth_rate", growthRate).
			Msg("High goroutine count detected - possible leak")
	}
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	gaugeValues := make(map[string]int, len(gm.gauges))
	for name, fn := range gm.gauges {
		gaugeValues[name] = fn()
	}

	return GoroutineMetrics{
		Current:  gm.current,
		Baseline: gm.baseline,
		Peak:     gm.peak,
		Growth:   gm.current - gm.baseline,
		Gauges:   gaugeValues,
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current  int            `json:"current"`
	Baseline int            `json:"baseline"`
	Peak     int            `json:"peak"`
	Growth   int            `json:"growth"`
	Gauges   map[string]int `json:"gauges"`
}
