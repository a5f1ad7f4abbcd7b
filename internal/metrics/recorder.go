// Package metrics records generation and fallback activity of the interview engine.
package metrics

import "time"

// Fallback kinds reported through IncFallback.
const (
	FallbackSetup      = "setup"
	FallbackQuestion   = "question"
	FallbackEvaluation = "evaluation"
	FallbackReport     = "report"
)

// Recorder receives engine measurements.
type Recorder interface {
	ObserveGeneration(provider, model string, success bool, duration time.Duration)
	IncFallback(kind string)
	ObserveFinalized(exchanges int)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) ObserveGeneration(string, string, bool, time.Duration) {}
func (Nop) IncFallback(string)                                    {}
func (Nop) ObserveFinalized(int)                                  {}
