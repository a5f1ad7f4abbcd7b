package interview

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/interviu/internal/utils"
)

const (
	minScore = 1
	maxScore = 10

	previewLength = 200
)

type setupPayload struct {
	Company         string `mapstructure:"company"`
	Role            string `mapstructure:"role"`
	ExperienceLevel string `mapstructure:"experienceLevel"`
	IsValid         bool   `mapstructure:"isValid"`
	Message         string `mapstructure:"message"`
}

func (p setupPayload) field(step Step) string {
	switch step {
	case StepCompany:
		return strings.TrimSpace(p.Company)
	case StepRole:
		return strings.TrimSpace(p.Role)
	case StepExperience:
		return strings.TrimSpace(p.ExperienceLevel)
	default:
		return ""
	}
}

type evaluationPayload struct {
	TechnicalCorrectness *float64 `mapstructure:"technicalCorrectness"`
	Clarity              *float64 `mapstructure:"clarity"`
	Depth                *float64 `mapstructure:"depth"`
	Communication        *float64 `mapstructure:"communication"`
	Feedback             string   `mapstructure:"feedback"`
	FollowUpQuestion     string   `mapstructure:"followUpQuestion"`
}

type reportPayload struct {
	OverallScore           *float64 `mapstructure:"overallScore"`
	Strengths              []string `mapstructure:"strengths"`
	Weaknesses             []string `mapstructure:"weaknesses"`
	ImprovementSuggestions []string `mapstructure:"improvementSuggestions"`
}

func parseSetup(raw string) (setupPayload, error) {
	var p setupPayload
	if err := decodeObject(raw, &p); err != nil {
		return setupPayload{}, err
	}
	return p, nil
}

func parseEvaluation(raw string) (*Evaluation, error) {
	var p evaluationPayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, err
	}

	for name, v := range map[string]*float64{
		"technicalCorrectness": p.TechnicalCorrectness,
		"clarity":              p.Clarity,
		"depth":                p.Depth,
		"communication":        p.Communication,
	} {
		if v == nil || math.IsNaN(*v) {
			return nil, malformed(raw, fmt.Errorf("missing score %q", name))
		}
	}

	return &Evaluation{
		Scores: Scores{
			TechnicalCorrectness: clampScore(*p.TechnicalCorrectness),
			Clarity:              clampScore(*p.Clarity),
			Depth:                clampScore(*p.Depth),
			Communication:        clampScore(*p.Communication),
		},
		Feedback: strings.TrimSpace(p.Feedback),
		FollowUp: strings.TrimSpace(p.FollowUpQuestion),
	}, nil
}

func parseReport(raw string) (*Report, error) {
	var p reportPayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, err
	}
	if p.OverallScore == nil || math.IsNaN(*p.OverallScore) {
		return nil, malformed(raw, fmt.Errorf("missing overallScore"))
	}
	if p.Strengths == nil || p.Weaknesses == nil || p.ImprovementSuggestions == nil {
		return nil, malformed(raw, fmt.Errorf("missing report lists"))
	}

	return &Report{
		OverallScore:           clampScore(*p.OverallScore),
		Strengths:              cleanList(p.Strengths),
		Weaknesses:             cleanList(p.Weaknesses),
		ImprovementSuggestions: cleanList(p.ImprovementSuggestions),
	}, nil
}

// decodeObject parses model output as a JSON object and weakly decodes it into out.
func decodeObject(raw string, out any) error {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return malformed(raw, err)
	}
	if data == nil {
		return malformed(raw, fmt.Errorf("expected JSON object"))
	}

	if err := mapstructure.WeakDecode(data, out); err != nil {
		return malformed(raw, err)
	}
	return nil
}

func malformed(raw string, err error) error {
	return &MalformedResponseError{Preview: utils.TruncateForLog(raw, previewLength), Err: err}
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")

	// models sometimes wrap the object in prose
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

func clampScore(v float64) int {
	switch {
	case v < minScore:
		return minScore
	case v > maxScore:
		return maxScore
	}
	return int(math.Round(v))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
