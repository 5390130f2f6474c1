package logging

import (
	"time"
)

// Timer is a measurement started with Start
type Timer struct {
	name   string
	start  time.Time
	logger *Logger
}

func logDuration(l *Logger, name string, d time.Duration, extra ...any) {
	args := append([]any{"duration", d.String(), "ms", d.Milliseconds()}, extra...)
	l.Debug(name, args...)
}

// Time runs fn and logs how long it took
func Time(name string, fn func()) {
	Get().Time(name, fn)
}

// TimeWithResult runs fn, logs how long it took and returns its result
//
//	records := logging.TimeWithResult("build details", func() []topology.DisplayRecord {
//	    return topology.BuildDetails(node, updated, filters)
//	})
func TimeWithResult[T any](name string, fn func() T) T {
	l := Get()
	if !l.IsEnabled() {
		return fn()
	}
	start := time.Now()
	result := fn()
	logDuration(l, name, time.Since(start))
	return result
}

// Start begins a measurement finished by End or EndWithCount
func Start(name string) Timer {
	return Timer{name: name, start: time.Now(), logger: Get()}
}

// End logs the time elapsed since Start
func End(t Timer) {
	if t.logger == nil || !t.logger.IsEnabled() {
		return
	}
	logDuration(t.logger, t.name, time.Since(t.start))
}

// EndWithCount is End plus the number of items processed
func EndWithCount(t Timer, count int) {
	if t.logger == nil || !t.logger.IsEnabled() {
		return
	}
	logDuration(t.logger, t.name, time.Since(t.start), "count", count)
}

// Time runs fn and logs its duration on this logger
func (l *Logger) Time(name string, fn func()) {
	if !l.IsEnabled() {
		fn()
		return
	}
	start := time.Now()
	fn()
	logDuration(l, name, time.Since(start))
}
