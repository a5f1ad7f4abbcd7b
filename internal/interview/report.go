package interview

import (
	"context"

	"github.com/spigell/interviu/internal/ai"
	"github.com/spigell/interviu/internal/metrics"
)

// FallbackReport is the neutral report used when the model cannot summarize.
func FallbackReport() *Report {
	return &Report{
		OverallScore: 6,
		Strengths:    []string{"Good communication", "Solid technical foundation"},
		Weaknesses:   []string{"Limited depth in some topics"},
		ImprovementSuggestions: []string{
			"Practice more scenario-based questions",
			"Give detailed explanations for technical answers",
		},
	}
}

// Synthesizer turns a finished transcript into a Report.
type Synthesizer struct {
	caller
}

func NewSynthesizer(generator ai.Generator, opts Options) *Synthesizer {
	return &Synthesizer{caller: newCaller(generator, opts)}
}

// Synthesize always returns a report; failures yield FallbackReport.
func (sy *Synthesizer) Synthesize(ctx context.Context, s *Session) *Report {
	raw, err := sy.generate(ctx, s, "report", buildReportPrompt(s))
	if err != nil {
		sy.fallback(s, metrics.FallbackReport, err)
		return FallbackReport()
	}

	report, err := parseReport(raw)
	if err != nil {
		sy.fallback(s, metrics.FallbackReport, err)
		return FallbackReport()
	}
	return report
}
