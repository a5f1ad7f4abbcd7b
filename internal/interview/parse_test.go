package interview

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```\n", want: `{"a":1}`},
		{name: "inline backticks", input: "`{\"a\":1}`", want: `{"a":1}`},
		{name: "prose around object", input: "Sure! Here is the evaluation:\n{\"a\":{\"b\":2}}\nGood luck.", want: `{"a":{"b":2}}`},
		{name: "fence after prose", input: "Result:\n```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "trailing text", input: `{"a":1} hope this helps`, want: `{"a":1}`},
		{name: "no object", input: "not json", want: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractJSON(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseEvaluation(t *testing.T) {
	raw := "```json\n" + `{
  "technicalCorrectness": 8.6,
  "clarity": "7",
  "depth": 0,
  "communication": 14,
  "feedback": "  Solid answer.  ",
  "followUpQuestion": "How would you scale it?"
}` + "\n```"

	eval, err := parseEvaluation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Scores{TechnicalCorrectness: 9, Clarity: 7, Depth: 1, Communication: 10}
	if eval.Scores != want {
		t.Fatalf("expected scores %+v, got %+v", want, eval.Scores)
	}
	if eval.Feedback != "Solid answer." {
		t.Fatalf("unexpected feedback: %q", eval.Feedback)
	}
	if eval.FollowUp != "How would you scale it?" {
		t.Fatalf("unexpected follow-up: %q", eval.FollowUp)
	}
}

func TestParseEvaluationEmbeddedInProse(t *testing.T) {
	raw := `Here is my assessment: {"technicalCorrectness": 6, "clarity": 6, "depth": 6, "communication": 6, "feedback": "Fine.", "followUpQuestion": ""} Let me know if you need more.`

	eval, err := parseEvaluation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Scores != (Scores{TechnicalCorrectness: 6, Clarity: 6, Depth: 6, Communication: 6}) {
		t.Fatalf("unexpected scores: %+v", eval.Scores)
	}
	if eval.FollowUp != "" {
		t.Fatalf("expected empty follow-up, got %q", eval.FollowUp)
	}
}

func TestParseEvaluationErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":      "I think the answer was great",
		"missing score": `{"technicalCorrectness": 5, "clarity": 5, "depth": 5, "feedback": "ok"}`,
		"array":         `[1, 2, 3]`,
		"null":          `null`,
		"bad score":     `{"technicalCorrectness": "high", "clarity": 5, "depth": 5, "communication": 5}`,
	}

	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := parseEvaluation(raw)
			var malformedErr *MalformedResponseError
			if !errors.As(err, &malformedErr) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestParseReport(t *testing.T) {
	report, err := parseReport(`{
  "overallScore": 7,
  "strengths": ["Clear", " "],
  "weaknesses": "Shallow on databases",
  "improvementSuggestions": []
}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.OverallScore != 7 {
		t.Fatalf("unexpected score: %d", report.OverallScore)
	}
	if len(report.Strengths) != 1 || report.Strengths[0] != "Clear" {
		t.Fatalf("unexpected strengths: %v", report.Strengths)
	}
	if len(report.Weaknesses) != 1 || report.Weaknesses[0] != "Shallow on databases" {
		t.Fatalf("unexpected weaknesses: %v", report.Weaknesses)
	}
	if len(report.ImprovementSuggestions) != 0 {
		t.Fatalf("expected empty suggestions, got %v", report.ImprovementSuggestions)
	}
}

func TestParseReportClampsAndRequiresFields(t *testing.T) {
	report, err := parseReport(`{"overallScore": 42, "strengths": [], "weaknesses": [], "improvementSuggestions": []}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OverallScore != 10 {
		t.Fatalf("expected clamped score 10, got %d", report.OverallScore)
	}

	if _, err := parseReport(`{"strengths": [], "weaknesses": [], "improvementSuggestions": []}`); err == nil {
		t.Fatal("expected error for missing overallScore")
	}
	if _, err := parseReport(`{"overallScore": 5, "strengths": []}`); err == nil {
		t.Fatal("expected error for missing lists")
	}
}

func TestMalformedResponseErrorPreviewIsTruncated(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}

	_, err := parseEvaluation(string(long))
	var malformedErr *MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if len(malformedErr.Preview) != previewLength+len("...") {
		t.Fatalf("unexpected preview length %d", len(malformedErr.Preview))
	}
}
