package interview

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interviu/internal/ai"
	"github.com/spigell/interviu/internal/metrics"
)

const (
	// OpeningQuestion is always the first question of an interview.
	OpeningQuestion = "Tell me about yourself."
	// MaxExchanges caps the number of question/answer exchanges per interview.
	// It is independent of Session.TargetQuestions.
	MaxExchanges = 10

	fallbackFeedback = "AI evaluation unavailable — proceeding with fallback."
)

// OutcomeKind tags the result of an answer submission.
type OutcomeKind int

const (
	Continue OutcomeKind = iota + 1
	Finalize
)

func (k OutcomeKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Finalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// Outcome is the result of SubmitAnswer: either the next question or the final report.
type Outcome struct {
	Kind     OutcomeKind
	Feedback string
	Question string
	Report   *Report
}

// Engine drives the question and answer cycle of a session.
type Engine struct {
	caller
	bank         *Bank
	synthesizer  *Synthesizer
	maxExchanges int
}

// NewEngine builds an engine. A non-positive maxExchanges selects MaxExchanges.
func NewEngine(generator ai.Generator, bank *Bank, synthesizer *Synthesizer, maxExchanges int, opts Options) *Engine {
	if bank == nil {
		bank = DefaultBank()
	}
	if synthesizer == nil {
		synthesizer = NewSynthesizer(generator, opts)
	}
	if maxExchanges <= 0 {
		maxExchanges = MaxExchanges
	}
	return &Engine{
		caller:       newCaller(generator, opts),
		bank:         bank,
		synthesizer:  synthesizer,
		maxExchanges: maxExchanges,
	}
}

// Start issues the opening question, or repeats the open one on restart.
func (e *Engine) Start(_ context.Context, s *Session) (string, error) {
	if s.Finalized() {
		return "", validationErrorf("interview already finished")
	}

	if !s.Started() {
		s.appendQuestion(OpeningQuestion)
		return OpeningQuestion, nil
	}

	if ex, ok := s.PendingExchange(); ok {
		return ex.Question, nil
	}
	return "", validationErrorf("no open question")
}

// NextQuestion asks the model for a new question and falls back to the bank
// when the call fails or the result repeats an earlier question.
func (e *Engine) NextQuestion(ctx context.Context, s *Session) string {
	priors := s.Questions()

	raw, err := e.generate(ctx, s, "question", buildQuestionPrompt(s))
	if err != nil {
		e.fallback(s, metrics.FallbackQuestion, err)
		return e.bank.Pick(s.Role, priors)
	}

	question := strings.TrimSpace(raw)
	if isRepeat(question, priors) {
		e.log(s).Debug("discarding repeated question", zap.String("question", question))
		e.Recorder.IncFallback(metrics.FallbackQuestion)
		return e.bank.Pick(s.Role, priors)
	}
	return question
}

// SubmitAnswer records the answer to the open question, evaluates it and
// either appends the next question or finalizes the session with a report.
// Once the answer is accepted the call always reaches one of those outcomes.
func (e *Engine) SubmitAnswer(ctx context.Context, s *Session, answer string) (Outcome, error) {
	if s.Finalized() {
		return Outcome{}, validationErrorf("interview already finished")
	}
	ex, ok := s.PendingExchange()
	if !ok {
		return Outcome{}, validationErrorf("no open question")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Outcome{}, validationErrorf("answer is empty")
	}

	ex.Answer = answer
	eval, fromBank := e.evaluate(ctx, s, ex)

	next := ""
	if eval.FollowUp != "" && len(s.Exchanges) < e.maxExchanges {
		next = eval.FollowUp
		// a bank pick only repeats once the pool is exhausted
		if !fromBank && isRepeat(next, s.Questions()) {
			next = e.NextQuestion(ctx, s)
		}
		eval.FollowUp = next
	}

	ex.Evaluation = eval
	s.Pending = NoPending

	if next != "" {
		s.appendQuestion(next)
		return Outcome{Kind: Continue, Feedback: eval.Feedback, Question: next}, nil
	}

	s.Report = e.synthesizer.Synthesize(ctx, s)
	e.Recorder.ObserveFinalized(len(s.Exchanges))
	e.log(s).Info("interview finalized",
		zap.Int("exchanges", len(s.Exchanges)),
		zap.Int("overall_score", s.Report.OverallScore),
	)
	return Outcome{Kind: Finalize, Feedback: eval.Feedback, Report: s.Report}, nil
}

// evaluate scores the answer. The bool reports whether the follow-up was
// taken from the bank.
func (e *Engine) evaluate(ctx context.Context, s *Session, ex *Exchange) (*Evaluation, bool) {
	raw, err := e.generate(ctx, s, "evaluation", buildEvaluationPrompt(s, ex))
	if err == nil {
		var eval *Evaluation
		if eval, err = parseEvaluation(raw); err == nil {
			return eval, false
		}
	}

	e.fallback(s, metrics.FallbackEvaluation, err)
	return &Evaluation{
		Scores:   FallbackScores(),
		Feedback: fallbackFeedback,
		FollowUp: e.bank.Pick(s.Role, s.Questions()),
	}, true
}

// FallbackScores is the neutral profile used when an answer cannot be evaluated.
func FallbackScores() Scores {
	return Scores{TechnicalCorrectness: 5, Clarity: 7, Depth: 6, Communication: 7}
}

func isRepeat(question string, priors []string) bool {
	normalized := Normalize(question)
	if normalized == "" {
		return true
	}
	_, seen := normalizeAll(priors)[normalized]
	return seen
}
