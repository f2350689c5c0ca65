package pipeline

import (
	"context"
	"log/slog"

	"github.com/xastools/beamcat/internal/extract"
	"github.com/xastools/beamcat/internal/model"
)

// State carries one region's run through the pipeline. Steps fill it in
// order: the page first, then the facility slots, then the catalog.
type State struct {
	// Region is the region being processed.
	Region model.Region

	// Page is the fully-parsed source page, set by the fetch step.
	Page *extract.Page

	// Slots is the explicit facility -> table-slot mapping, set by the
	// facility-list step.
	Slots []extract.FacilitySlot

	// Catalog is the assembled result, initialized by the facility-list
	// step and filled by the beamline-tables step.
	Catalog *model.Catalog
}

// NewState creates the initial state for a region run.
func NewState(region model.Region) *State {
	return &State{Region: region}
}

// Step is one stage of the per-region build.
//
// Design decision: We use an interface rather than function types
// because steps carry configuration (fetcher, cache, override lists)
// and a Name() for logging.
type Step interface {
	// Do executes the step against the accumulated state.
	Do(ctx context.Context, st *State) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs steps in order, stopping at the first error.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddSteps appends steps in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence. It checks for cancellation
// between steps and returns the first error encountered; on error the
// state's catalog must be considered unusable and nothing written.
func (p *Pipeline) Execute(ctx context.Context, st *State) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"region", st.Region,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name(), "region", st.Region)

		if err := step.Do(ctx, st); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"region", st.Region,
				"error", err,
			)
			return err
		}
	}
	return nil
}
