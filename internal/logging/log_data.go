package logging

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogData accumulates fields and timings over the life of one request so the
// completion line carries everything in a single entry. Handlers hand it to
// the service calls they time, which may run on other goroutines.
type LogData struct {
	mu      sync.Mutex
	fields  map[string]any
	timings map[string]int64
	logger  *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		fields:  make(map[string]any),
		timings: make(map[string]int64),
		logger:  logger,
	}
}

// AddTiming starts a named timer. The returned func stops it and records the
// elapsed milliseconds under the name.
func (l *LogData) AddTiming(name string) func() {
	start := time.Now()

	return func() {
		elapsed := time.Since(start).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timings[name] = elapsed
	}
}

func (l *LogData) AddData(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields[key] = value
}

// Log returns an entry carrying every field and timing collected so far.
func (l *LogData) Log() *logrus.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := logrus.NewEntry(l.logger)
	for key, value := range l.fields {
		entry = entry.WithField(key, value)
	}
	for name, elapsed := range l.timings {
		entry = entry.WithField(name, elapsed)
	}
	return entry
}
