package qbell

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// Shots is the number of independent trials in every measurement run.
const Shots = 1024

// RunConfig fixes how a circuit is executed.
type RunConfig struct {
	Shots   int
	Backend string
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Shots:   Shots,
		Backend: QasmSimulator,
	}
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBackend selects the backend by name. The shot count stays fixed.
func WithBackend(name string) ServiceOption {
	return func(s *Service) {
		if name != "" {
			s.run.Backend = name
		}
	}
}

func WithMetrics(metrics *Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = metrics
	}
}

/*
Service measures the Bell pair. It holds no per-run state: every call
builds its own circuit, resolves its own backend and returns its own
counts, so one Service can serve any number of concurrent callers.
*/
type Service struct {
	provider Provider
	run      RunConfig
	metrics  *Metrics
}

func NewService(provider Provider, opts ...ServiceOption) *Service {
	if provider == nil {
		panic("qbell: NewService needs a provider")
	}

	s := &Service{
		provider: provider,
		run:      DefaultRunConfig(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) RunConfig() RunConfig {
	return s.run
}

/*
MeasureBellPair builds the Bell circuit, runs it on the configured backend
and returns the full counts. A backend that cannot be resolved yields
ErrBackendUnavailable, a run that does not complete yields
ErrExecutionFailure. Nothing is retried.
*/
func (s *Service) MeasureBellPair(ctx context.Context) (Counts, error) {
	runID := uuid.NewString()
	startTime := time.Now()
	circuit := BellCircuit()

	backend, err := s.provider.GetBackend(s.run.Backend)
	if err != nil {
		if !errors.Is(err, ErrBackendUnavailable) {
			err = errors.Wrap(ErrBackendUnavailable, err.Error())
		}

		log.Error("backend unavailable", "run", runID, "backend", s.run.Backend, "err", err)
		s.metrics.recordRun(s.run.Backend, startTime, s.run.Shots, statusUnavailable)
		return nil, err
	}

	errnie.Info("measurement %s - backend %s, shots %d", runID, backend.Name(), s.run.Shots)

	counts, err := backend.Run(ctx, circuit, s.run.Shots)
	if err != nil {
		if !errors.Is(err, ErrExecutionFailure) {
			err = errors.Wrapf(ErrExecutionFailure, "%s: %v", backend.Name(), err)
		}

		log.Error("measurement failed", "run", runID, "backend", backend.Name(), "err", err)
		s.metrics.recordRun(s.run.Backend, startTime, s.run.Shots, statusFailed)
		return nil, err
	}

	log.Debug("measurement complete", "run", runID, "counts", counts.String(), "took", time.Since(startTime))
	s.metrics.recordRun(s.run.Backend, startTime, s.run.Shots, statusOK)

	return counts, nil
}

/*
Format turns counts into the route payload. Outcomes outside the Bell
pair are logged and counted before they are dropped. The noiseless
simulator never produces any.
*/
func (s *Service) Format(counts Counts) Payload {
	for outcome, n := range Dropped(counts) {
		log.Warn("outcome dropped from payload", "outcome", outcome, "count", n)
		s.metrics.recordDropped(outcome, n)
	}

	return Format(counts)
}
