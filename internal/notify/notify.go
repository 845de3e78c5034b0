// Package notify renders the countdown's persistent status indicator.
// Updates are best-effort: a missing notification tool degrades to the
// daemon log, never to an error.
package notify

import "log"

// Indicator shows the countdown status. Implementations satisfy the
// timer's Indicator dependency.
type Indicator interface {
	Update(title, body string)
	Clear()
}

// New returns the platform indicator, falling back to log output when the
// platform has no notification tool.
func New(logger *log.Logger) Indicator {
	if logger == nil {
		logger = log.Default()
	}
	if ind := newIndicator(logger); ind != nil {
		return ind
	}
	return &logIndicator{logger: logger}
}

// NewLog returns an indicator that only writes to the daemon log.
func NewLog(logger *log.Logger) Indicator {
	if logger == nil {
		logger = log.Default()
	}
	return &logIndicator{logger: logger}
}

type logIndicator struct {
	logger *log.Logger
}

func (l *logIndicator) Update(title, body string) {
	l.logger.Printf("indicator: %s | %s", title, body)
}

func (l *logIndicator) Clear() {
	l.logger.Printf("indicator: cleared")
}
