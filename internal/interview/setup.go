package interview

import (
	"context"
	"strings"

	"github.com/spigell/interviu/internal/ai"
	"github.com/spigell/interviu/internal/metrics"
)

// Step is a state of the setup conversation.
type Step string

const (
	StepCompany    Step = "company"
	StepRole       Step = "role"
	StepExperience Step = "experience"
	StepReady      Step = "ready"
)

const (
	invalidFormatMessage = "Invalid response format"
	emptyUtterance       = "Please provide a response."
	confirmPrompt        = "Setup complete. Shall we begin?"
)

var setupPrompts = map[Step]string{
	StepCompany:    "Hello! I'm Interviu.AI. Which company are you preparing for? (e.g., Google, Amazon, Microsoft)",
	StepRole:       "Great! What role are you applying for? (e.g., Frontend Developer, Backend Engineer, DevOps)",
	StepExperience: "Perfect! What's your experience level? (Fresher, Mid-level, Senior, Lead)",
	StepReady:      "Thanks! Preparing your personalized interview now...",
}

var nextStep = map[Step]Step{
	StepCompany:    StepRole,
	StepRole:       StepExperience,
	StepExperience: StepReady,
}

// ParseStep validates a step name received from a caller.
func ParseStep(raw string) (Step, error) {
	step := Step(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := nextStep[step]; !ok {
		return "", validationErrorf("invalid step %q", raw)
	}
	return step, nil
}

// SetupPrompt returns the scripted prompt shown when entering step.
func SetupPrompt(step Step) string {
	return setupPrompts[step]
}

// SetupReply is what the candidate sees after a setup turn.
type SetupReply struct {
	Prompt  string `json:"prompt"`
	Step    Step   `json:"step"`
	IsValid bool   `json:"isValid"`
}

// Setup runs the scripted company, role and experience conversation.
type Setup struct {
	caller
}

func NewSetup(generator ai.Generator, opts Options) *Setup {
	return &Setup{caller: newCaller(generator, opts)}
}

// Begin returns the opening prompt.
func (st *Setup) Begin() SetupReply {
	return SetupReply{Prompt: setupPrompts[StepCompany], Step: StepCompany, IsValid: true}
}

// Process extracts the value for step from the utterance and stores it on s.
// If the model cannot be reached or answers with malformed output the trimmed
// utterance is accepted as is.
func (st *Setup) Process(ctx context.Context, s *Session, step Step, utterance string) (SetupReply, error) {
	if _, ok := nextStep[step]; !ok {
		return SetupReply{}, validationErrorf("invalid step %q", step)
	}
	if s.Finalized() || s.Started() {
		return SetupReply{}, validationErrorf("interview already started")
	}

	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return SetupReply{Prompt: emptyUtterance, Step: step}, nil
	}

	value, message := st.extract(ctx, s, step, utterance)
	if value == "" {
		if message == "" {
			message = invalidFormatMessage
		}
		return SetupReply{Prompt: message, Step: step}, nil
	}

	switch step {
	case StepCompany:
		s.Company = value
	case StepRole:
		s.Role = value
	case StepExperience:
		s.ExperienceLevel = value
	}

	next := nextStep[step]
	return SetupReply{Prompt: setupPrompts[next], Step: next, IsValid: true}, nil
}

func (st *Setup) extract(ctx context.Context, s *Session, step Step, utterance string) (string, string) {
	raw, err := st.generate(ctx, s, "setup", buildSetupPrompt(step, utterance))
	if err != nil {
		st.fallback(s, metrics.FallbackSetup, err)
		return utterance, ""
	}

	payload, err := parseSetup(raw)
	if err != nil {
		st.fallback(s, metrics.FallbackSetup, err)
		return utterance, ""
	}

	return payload.field(step), strings.TrimSpace(payload.Message)
}

// Confirm checks that every setup field is populated.
func (st *Setup) Confirm(s *Session) (string, error) {
	if s.SetupStep() != StepReady {
		return "", validationErrorf("setup incomplete")
	}
	return confirmPrompt, nil
}
