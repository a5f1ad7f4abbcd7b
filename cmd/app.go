package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interviu/internal/interview"
	"github.com/spigell/interviu/internal/logger"
	"github.com/spigell/interviu/internal/metrics"
	"github.com/spigell/interviu/internal/service"
	"github.com/spigell/interviu/internal/store"
)

// application bundles everything a command needs and releases it on close.
type application struct {
	config  *Config
	logger  *zap.Logger
	service *service.Service
	store   store.Store
	owner   string

	metricsServer *http.Server
}

// newApplication wires configuration, logging, the AI provider, the store
// and the interview service. It exits the process on unrecoverable errors.
func newApplication(ctx context.Context) *application {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		lg.Fatal("config is required")
	}
	if config.Interview == nil {
		config.Interview = &InterviewConfig{}
	}
	if config.Store == nil {
		config.Store = &StoreConfig{}
	}

	lg.Debug("starting", zap.String("version", version), zap.Any("store", config.Store), zap.Any("interview", config.Interview))

	recorder := metrics.NewPrometheusRecorder()

	generator, err := newGenerator(ctx, config.AI, recorder, lg)
	if err != nil {
		lg.Fatal("configuring ai provider", zap.Error(err),
			zap.String("hint", "set ai.provider to none to practice with fallback questions only"),
		)
	}

	bank := interview.DefaultBank()
	if file := strings.TrimSpace(config.Interview.QuestionsFile); file != "" {
		if bank, err = interview.LoadBank(file); err != nil {
			lg.Fatal("loading question bank", zap.Error(err))
		}
	}

	maxLogLength := 0
	if config.AI != nil {
		maxLogLength = config.AI.MaxLogLength
	}
	opts := interview.Options{Logger: lg, Recorder: recorder, MaxLogLength: maxLogLength}

	st, err := store.Open(ctx, config.Store.Driver, config.Store.Path)
	if err != nil {
		lg.Fatal("opening session store", zap.Error(err), zap.String("driver", config.Store.Driver))
	}

	svc := service.New(st,
		interview.NewSetup(generator, opts),
		interview.NewEngine(generator, bank, interview.NewSynthesizer(generator, opts), config.Interview.MaxExchanges, opts),
		service.Config{Voice: config.Interview.Voice, TargetQuestions: config.Interview.TargetQuestions},
		lg,
	)

	a := &application{
		config:  config,
		logger:  lg,
		service: svc,
		store:   st,
		owner:   strings.TrimSpace(viper.GetString("owner")),
	}

	if config.Metrics != nil && strings.TrimSpace(config.Metrics.Listen) != "" {
		a.serveMetrics(config.Metrics.Listen, recorder)
	}

	return a
}

func (a *application) serveMetrics(addr string, recorder *metrics.PrometheusRecorder) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())

	a.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	a.logger.Info("serving metrics", zap.String("addr", addr))
}

func (a *application) close() {
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Warn("stopping metrics server", zap.Error(err))
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing session store", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *application) requireOwner() {
	if a.owner == "" {
		a.logger.Fatal("owner is required", zap.String("hint", "pass --owner"))
	}
}

func describeSession(s *interview.Session) string {
	status := "in setup"
	switch {
	case s.Finalized():
		status = fmt.Sprintf("finished, score %d", s.Report.OverallScore)
	case s.Started():
		status = fmt.Sprintf("in progress, %d answered", answered(s))
	}
	return status
}

func answered(s *interview.Session) int {
	n := 0
	for _, ex := range s.Exchanges {
		if ex != nil && ex.Evaluation != nil {
			n++
		}
	}
	return n
}
