// Package application orchestrates the vote counting pipeline: it wires a
// ballot source to the validation and tally units and exposes the single
// entry point the presentation shell calls.
package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/codetown/votecount/infrastructure/units"
	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

// errNoResult indicates the final pipeline stage completed without
// storing a result, which means the pipeline was assembled without a
// tally stage.
var errNoResult = errors.New("pipeline completed without producing a result")

// Processor runs the full load-and-tally pipeline for one vote file at a
// time. Each LoadFile call is an independent sequential run: state flows
// through the stages as explicit values and nothing is retained between
// invocations. The optional result cache keyed by input content hash is
// the only cross-call memory, and it is off unless WithCache is given.
type Processor struct {
	// source supplies the raw header and ballot lines for a path.
	source ports.BallotSource
	// stages run in order; each consumes the prior stage's output and
	// fails fast on the first invalid input.
	stages []ports.Unit
	// logger receives debug/warn diagnostics; never the user-facing
	// result or error text.
	logger *slog.Logger

	// cache holds completed results keyed by inputs hash, nil when
	// caching is disabled.
	cache map[string]domain.Result
	// cacheMu guards cache.
	cacheMu sync.RWMutex
	// sf collapses concurrent loads of identical content into one run.
	sf singleflight.Group
}

// Option configures a Processor.
type Option func(*Processor)

// WithUnits replaces the default pipeline stages. Use it to wrap stages
// with observability middleware or to substitute stages in tests. Stages
// run in the order given.
func WithUnits(stages ...ports.Unit) Option {
	return func(p *Processor) { p.stages = stages }
}

// WithCache enables the in-memory result cache. Results are keyed by the
// SHA-256 of the loaded lines, so a re-load of unchanged content returns
// the identical result without re-validating. Tallying is deterministic,
// which makes this safe.
func WithCache() Option {
	return func(p *Processor) { p.cache = make(map[string]domain.Result) }
}

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// NewProcessor creates a Processor reading from source. Without options
// it assembles the standard three stages: header validation, ballot
// validation, and Borda tallying. Every stage is validated before the
// processor is returned.
func NewProcessor(source ports.BallotSource, opts ...Option) (*Processor, error) {
	if source == nil {
		return nil, errors.New("ballot source is required")
	}

	p := &Processor{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.stages == nil {
		stages, err := DefaultUnits()
		if err != nil {
			return nil, err
		}
		p.stages = stages
	}

	for _, stage := range p.stages {
		if err := stage.Validate(); err != nil {
			return nil, fmt.Errorf("unit %s failed validation: %w", stage.Name(), err)
		}
	}

	return p, nil
}

// DefaultUnits assembles the standard pipeline stages in order: header
// validation, ballot validation, Borda tallying. It is exported so the
// shell can wrap the stages with observability middleware before handing
// them to WithUnits.
func DefaultUnits() ([]ports.Unit, error) {
	header, err := units.NewHeaderUnit("header_validator")
	if err != nil {
		return nil, err
	}
	ballots, err := units.NewBallotUnit("ballot_validator")
	if err != nil {
		return nil, err
	}
	borda, err := units.NewBordaUnit("borda_tally")
	if err != nil {
		return nil, err
	}
	return []ports.Unit{header, ballots, borda}, nil
}

// LoadFile loads, validates, and tallies the vote file at path. It
// returns the ranked result, or the first typed error encountered;
// errors propagate unchanged from the stage that produced them and no
// partial results are ever returned.
func (p *Processor) LoadFile(ctx context.Context, path string) (domain.Result, error) {
	header, lines, err := p.source.Load(ctx, path)
	if err != nil {
		p.logger.Warn("vote file load failed", "path", path, "kind", domain.KindOf(err))
		return domain.Result{}, err
	}

	hash := inputsHash(header, lines)

	if p.cache == nil {
		return p.run(ctx, path, header, lines, hash)
	}

	v, err, _ := p.sf.Do(hash, func() (any, error) {
		if cached, ok := p.cachedResult(hash); ok {
			p.logger.Debug("result cache hit", "path", path, "inputs_hash", hash)
			return cached, nil
		}
		result, err := p.run(ctx, path, header, lines, hash)
		if err != nil {
			return nil, err
		}
		p.storeResult(hash, result)
		return result, nil
	})
	if err != nil {
		return domain.Result{}, err
	}
	return v.(domain.Result), nil
}

// run executes the pipeline stages over a fresh State and stamps the run
// metadata onto the produced result.
func (p *Processor) run(ctx context.Context, path, header string, lines []string, hash string) (domain.Result, error) {
	runID := uuid.NewString()

	state := domain.NewState()
	state = domain.With(state, domain.KeySourcePath, path)
	state = domain.With(state, domain.KeyRunID, runID)
	state = domain.With(state, domain.KeyHeader, header)
	state = domain.With(state, domain.KeyVoteLines, lines)

	for _, stage := range p.stages {
		var err error
		state, err = stage.Execute(ctx, state)
		if err != nil {
			p.logger.Debug("pipeline stage rejected input",
				"unit", stage.Name(), "path", path, "kind", domain.KindOf(err))
			return domain.Result{}, err
		}
	}

	result, ok := domain.Get(state, domain.KeyResult)
	if !ok || result == nil {
		return domain.Result{}, domain.NewInternalError("pipeline", errNoResult)
	}

	result.ID = runID
	result.SourcePath = path
	result.InputsHash = hash
	result.ComputedAt = time.Now().UTC()

	p.logger.Debug("vote file tallied",
		"path", path, "run_id", runID,
		"candidates", len(result.Rankings), "ballots", result.BallotCount)
	return *result, nil
}

func (p *Processor) cachedResult(hash string) (domain.Result, bool) {
	p.cacheMu.RLock()
	defer p.cacheMu.RUnlock()
	result, ok := p.cache[hash]
	return result, ok
}

func (p *Processor) storeResult(hash string, result domain.Result) {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	p.cache[hash] = result
}

// inputsHash computes the hex-encoded SHA-256 over the header and ballot
// lines. Line boundaries are part of the digest so "a;b" followed by "c"
// never collides with "a" followed by "b;c".
func inputsHash(header string, lines []string) string {
	h := sha256.New()
	h.Write([]byte(header))
	for _, line := range lines {
		h.Write([]byte{'\n'})
		h.Write([]byte(line))
	}
	return hex.EncodeToString(h.Sum(nil))
}
