package interview

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/interviu/internal/ai"
	"github.com/spigell/interviu/internal/logger"
	"github.com/spigell/interviu/internal/metrics"
	"github.com/spigell/interviu/internal/utils"
)

const defaultMaxLogLength = 200

var errNoGenerator = errors.New("no generator configured")

// Options carries the collaborators shared by the setup controller, the
// engine and the report synthesizer.
type Options struct {
	Logger       *zap.Logger
	Recorder     metrics.Recorder
	MaxLogLength int
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Recorder == nil {
		o.Recorder = metrics.Nop{}
	}
	if o.MaxLogLength <= 0 {
		o.MaxLogLength = defaultMaxLogLength
	}
	return o
}

type caller struct {
	generator ai.Generator
	Options
}

func newCaller(g ai.Generator, opts Options) caller {
	return caller{generator: g, Options: opts.withDefaults()}
}

func (c caller) log(s *Session) *zap.Logger {
	l := c.Logger
	if c.generator != nil {
		l = logger.WithFields(l, logger.CommonFields("", c.generator.Model())...)
	}
	if s != nil {
		l = logger.WithFields(l, logger.SessionFields(s.ID, s.OwnerID)...)
	}
	return l
}

func (c caller) generate(ctx context.Context, s *Session, kind, prompt string) (string, error) {
	if c.generator == nil {
		return "", ai.NewGenerationError("", errNoGenerator)
	}

	l := c.log(s).With(zap.String("kind", kind))
	l.Debug("generation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.MaxLogLength)),
	)

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", ai.NewGenerationError("", err)
	}

	l.Debug("generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.MaxLogLength)),
	)
	return raw, nil
}

func (c caller) fallback(s *Session, kind string, cause error) {
	c.Recorder.IncFallback(kind)
	c.log(s).Warn("using fallback", zap.String("kind", kind), zap.Error(cause))
}
