package interview

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

var (
	//go:embed prompts/setup.md
	setupTemplate string
	//go:embed prompts/question.md
	questionTemplate string
	//go:embed prompts/evaluation.md
	evaluationTemplate string
	//go:embed prompts/report.md
	reportTemplate string
)

func contextPairs(s *Session) []string {
	return []string{
		"{{COMPANY}}", orUnknown(s.Company),
		"{{ROLE}}", orUnknown(s.Role),
		"{{EXPERIENCE}}", orUnknown(s.ExperienceLevel),
		"{{VOICE}}", s.voice(),
	}
}

func render(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}

func buildSetupPrompt(step Step, utterance string) string {
	return render(setupTemplate,
		"{{UTTERANCE}}", utterance,
		"{{STEP}}", string(step),
	)
}

func buildQuestionPrompt(s *Session) string {
	pairs := append(contextPairs(s), "{{PREVIOUS_QUESTIONS}}", bulletList(s.Questions()))
	return render(questionTemplate, pairs...)
}

func buildEvaluationPrompt(s *Session, ex *Exchange) string {
	pairs := append(contextPairs(s),
		"{{QUESTION}}", ex.Question,
		"{{ANSWER}}", ex.Answer,
		"{{PREVIOUS_QUESTIONS}}", bulletList(s.Questions()),
	)
	return render(evaluationTemplate, pairs...)
}

func buildReportPrompt(s *Session) string {
	pairs := append(contextPairs(s), "{{TRANSCRIPT}}", transcript(s.Exchanges))
	return render(reportTemplate, pairs...)
}

func transcript(exchanges []*Exchange) string {
	var b strings.Builder
	for i, ex := range exchanges {
		if ex == nil {
			continue
		}
		scores := "null"
		if ex.Evaluation != nil {
			if data, err := json.Marshal(ex.Evaluation.Scores); err == nil {
				scores = string(data)
			}
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\nScores: %s\n", i+1, ex.Question, i+1, ex.Answer, scores)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "  - none"
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "  - "+item)
	}
	return strings.Join(lines, "\n")
}

func orUnknown(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return "unspecified"
}
