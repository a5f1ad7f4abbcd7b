// Package service exposes the interview operations to the outside world:
// setup, the question cycle, reports and history. Every operation is scoped
// to the calling owner and serialized per session.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interviu/internal/interview"
	"github.com/spigell/interviu/internal/logger"
	"github.com/spigell/interviu/internal/store"
)

// Config holds the defaults applied to new sessions.
type Config struct {
	Voice           string `mapstructure:"voice"`
	TargetQuestions int    `mapstructure:"target-questions"`
}

// SetupResult is returned when a new setup conversation begins.
type SetupResult struct {
	SessionID string         `json:"sessionId"`
	Prompt    string         `json:"prompt"`
	Step      interview.Step `json:"step"`
}

// AnswerResult carries the feedback and either the next question or the report.
type AnswerResult struct {
	Feedback     string            `json:"feedback"`
	NextQuestion string            `json:"nextQuestion,omitempty"`
	Report       *interview.Report `json:"report,omitempty"`
}

// Done reports whether the interview ended with this answer.
func (r AnswerResult) Done() bool {
	return r.Report != nil
}

// Service runs interview operations against a session store.
type Service struct {
	store  store.Store
	setup  *interview.Setup
	engine *interview.Engine
	cfg    Config
	logger *zap.Logger
	locks  *sessionLocks

	newID func() string
	now   func() time.Time
}

// New creates a Service. Empty config values fall back to the session defaults.
func New(st store.Store, setup *interview.Setup, engine *interview.Engine, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(cfg.Voice) == "" {
		cfg.Voice = interview.DefaultVoice
	}
	if cfg.TargetQuestions <= 0 {
		cfg.TargetQuestions = interview.DefaultTargetQuestions
	}

	return &Service{
		store:  st,
		setup:  setup,
		engine: engine,
		cfg:    cfg,
		logger: log,
		locks:  newSessionLocks(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// BeginSetup creates a session for owner and returns the first setup prompt.
func (s *Service) BeginSetup(ctx context.Context, owner string) (SetupResult, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return SetupResult{}, &interview.ValidationError{Reason: "owner is required"}
	}

	sess := interview.NewSession(s.newID(), owner, s.now().UTC())
	sess.Voice = s.cfg.Voice
	sess.TargetQuestions = s.cfg.TargetQuestions

	if err := s.store.Create(ctx, sess); err != nil {
		return SetupResult{}, fmt.Errorf("creating session: %w", err)
	}

	s.log(sess).Info("setup started")

	reply := s.setup.Begin()
	return SetupResult{SessionID: sess.ID, Prompt: reply.Prompt, Step: reply.Step}, nil
}

// ProcessSetupStep feeds one candidate utterance into the given setup step.
// The session is saved only when the step accepted a value.
func (s *Service) ProcessSetupStep(ctx context.Context, owner, id, step, utterance string) (interview.SetupReply, error) {
	parsed, err := interview.ParseStep(step)
	if err != nil {
		return interview.SetupReply{}, err
	}

	var reply interview.SetupReply
	err = s.withSession(ctx, owner, id, func(sess *interview.Session) (bool, error) {
		var err error
		reply, err = s.setup.Process(ctx, sess, parsed, utterance)
		if err != nil {
			return false, err
		}
		s.log(sess).Debug("setup step processed",
			zap.String("setup_step", string(parsed)),
			zap.Bool("valid", reply.IsValid),
		)
		return reply.IsValid, nil
	})
	return reply, err
}

// ConfirmSetup returns the confirmation prompt once company, role and
// experience are all known.
func (s *Service) ConfirmSetup(ctx context.Context, owner, id string) (string, error) {
	var msg string
	err := s.withSession(ctx, owner, id, func(sess *interview.Session) (bool, error) {
		var err error
		msg, err = s.setup.Confirm(sess)
		return false, err
	})
	return msg, err
}

// StartInterview issues the opening question. Calling it again returns the
// question that is still open.
func (s *Service) StartInterview(ctx context.Context, owner, id string) (string, error) {
	var question string
	err := s.withSession(ctx, owner, id, func(sess *interview.Session) (bool, error) {
		if sess.SetupStep() != interview.StepReady {
			return false, &interview.ValidationError{Reason: "setup incomplete"}
		}
		started := sess.Started()

		var err error
		question, err = s.engine.Start(ctx, sess)
		if err != nil {
			return false, err
		}
		if !started {
			s.log(sess).Info("interview started")
		}
		return !started, nil
	})
	return question, err
}

// SubmitAnswer answers the open question. The result carries either the next
// question or the final report.
func (s *Service) SubmitAnswer(ctx context.Context, owner, id, answer string) (AnswerResult, error) {
	var result AnswerResult
	err := s.withSession(ctx, owner, id, func(sess *interview.Session) (bool, error) {
		outcome, err := s.engine.SubmitAnswer(ctx, sess, answer)
		if err != nil {
			return false, err
		}

		result.Feedback = outcome.Feedback
		switch outcome.Kind {
		case interview.Continue:
			result.NextQuestion = outcome.Question
		case interview.Finalize:
			result.Report = outcome.Report
		}
		return true, nil
	})
	return result, err
}

// GetReport returns the final report of a finished interview.
func (s *Service) GetReport(ctx context.Context, owner, id string) (*interview.Report, error) {
	sess, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !sess.Finalized() {
		return nil, &interview.ValidationError{Reason: "report not ready"}
	}
	return sess.Report, nil
}

// Get returns the session when it belongs to owner.
func (s *Service) Get(ctx context.Context, owner, id string) (*interview.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.OwnerID != owner {
		return nil, interview.ErrNotFound
	}
	return sess, nil
}

// History lists the owner's sessions, newest first.
func (s *Service) History(ctx context.Context, owner string) ([]*interview.Session, error) {
	sessions, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// withSession loads the owner's session under its lock, runs fn and saves
// the session when fn reports a change.
func (s *Service) withSession(ctx context.Context, owner, id string, fn func(*interview.Session) (bool, error)) error {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}

	changed, err := fn(sess)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("saving session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *Service) log(sess *interview.Session) *zap.Logger {
	return logger.WithFields(s.logger, logger.SessionFields(sess.ID, sess.OwnerID)...)
}
