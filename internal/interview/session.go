package interview

import (
	"strings"
	"time"
)

const (
	// DefaultVoice is the interviewer style used when none is configured.
	DefaultVoice = "professional"
	// DefaultTargetQuestions is the advisory question count of a new session.
	DefaultTargetQuestions = 10
	// NoPending marks a session without an open question.
	NoPending = -1
)

// Session is one candidate's mock interview.
type Session struct {
	ID              string      `json:"id"`
	OwnerID         string      `json:"ownerId"`
	Company         string      `json:"company"`
	Role            string      `json:"role"`
	ExperienceLevel string      `json:"experienceLevel"`
	Voice           string      `json:"voice"`
	TargetQuestions int         `json:"targetQuestions"`
	Exchanges       []*Exchange `json:"exchanges"`
	Pending         int         `json:"pending"`
	Report          *Report     `json:"report,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Exchange is a single question and, once given, its answer and evaluation.
type Exchange struct {
	Question   string      `json:"question"`
	Answer     string      `json:"answer,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Scores holds the four per-answer ratings, each in 1..10.
type Scores struct {
	TechnicalCorrectness int `json:"technicalCorrectness" mapstructure:"technicalCorrectness"`
	Clarity              int `json:"clarity" mapstructure:"clarity"`
	Depth                int `json:"depth" mapstructure:"depth"`
	Communication        int `json:"communication" mapstructure:"communication"`
}

// Evaluation is assigned to an exchange as a unit after its answer is set.
type Evaluation struct {
	Scores   Scores `json:"scores"`
	Feedback string `json:"feedback,omitempty"`
	FollowUp string `json:"followUp,omitempty"`
}

// Report is the final aggregate of a finished interview.
type Report struct {
	OverallScore           int      `json:"overallScore" mapstructure:"overallScore"`
	Strengths              []string `json:"strengths" mapstructure:"strengths"`
	Weaknesses             []string `json:"weaknesses" mapstructure:"weaknesses"`
	ImprovementSuggestions []string `json:"improvementSuggestions" mapstructure:"improvementSuggestions"`
}

// NewSession returns an empty session with defaults applied.
func NewSession(id, owner string, now time.Time) *Session {
	return &Session{
		ID:              id,
		OwnerID:         owner,
		Voice:           DefaultVoice,
		TargetQuestions: DefaultTargetQuestions,
		Pending:         NoPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Finalized reports whether the session already carries a report.
func (s *Session) Finalized() bool {
	return s.Report != nil
}

// Started reports whether the first question has been issued.
func (s *Session) Started() bool {
	return len(s.Exchanges) > 0
}

// PendingExchange returns the open exchange, if any.
func (s *Session) PendingExchange() (*Exchange, bool) {
	if s.Pending < 0 || s.Pending >= len(s.Exchanges) {
		return nil, false
	}
	ex := s.Exchanges[s.Pending]
	if ex == nil || ex.Evaluation != nil {
		return nil, false
	}
	return ex, true
}

// Questions returns the text of every question asked so far, in order.
func (s *Session) Questions() []string {
	out := make([]string, 0, len(s.Exchanges))
	for _, ex := range s.Exchanges {
		if ex != nil {
			out = append(out, ex.Question)
		}
	}
	return out
}

// SetupStep derives the current setup step from the populated fields.
func (s *Session) SetupStep() Step {
	switch {
	case strings.TrimSpace(s.Company) == "":
		return StepCompany
	case strings.TrimSpace(s.Role) == "":
		return StepRole
	case strings.TrimSpace(s.ExperienceLevel) == "":
		return StepExperience
	default:
		return StepReady
	}
}

func (s *Session) voice() string {
	if v := strings.TrimSpace(s.Voice); v != "" {
		return v
	}
	return DefaultVoice
}

func (s *Session) appendQuestion(question string) {
	s.Exchanges = append(s.Exchanges, &Exchange{Question: question})
	s.Pending = len(s.Exchanges) - 1
}
