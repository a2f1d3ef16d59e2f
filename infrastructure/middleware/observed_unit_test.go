package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

// recordingCollector captures metric calls for assertions.
type recordingCollector struct {
	mu        sync.Mutex
	latencies []string
	counters  []map[string]string
}

func (rc *recordingCollector) RecordLatency(operation string, d time.Duration, labels map[string]string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.latencies = append(rc.latencies, operation)
}

func (rc *recordingCollector) RecordCounter(metric string, v float64, labels map[string]string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	copied := make(map[string]string, len(labels))
	for k, val := range labels {
		copied[k] = val
	}
	rc.counters = append(rc.counters, copied)
}

func (rc *recordingCollector) RecordGauge(metric string, v float64, labels map[string]string) {}

// passUnit succeeds and marks the state so pass-through can be verified.
type passUnit struct{}

func (passUnit) Name() string { return "pass" }
func (passUnit) Execute(ctx context.Context, s domain.State) (domain.State, error) {
	return domain.With(s, domain.KeyHeader, "touched"), nil
}
func (passUnit) Validate() error { return nil }

// failUnit always returns a validation error.
type failUnit struct{}

func (failUnit) Name() string { return "fail" }
func (failUnit) Execute(ctx context.Context, s domain.State) (domain.State, error) {
	return s, domain.NewLineError(domain.KindMalformedBallot, 2, "bad token")
}
func (failUnit) Validate() error { return errors.New("broken") }

func TestObservedUnit_PassThrough(t *testing.T) {
	rc := &recordingCollector{}
	wrapped := Observe(passUnit{}, rc)

	assert.Equal(t, "pass", wrapped.Name())

	state := domain.With(domain.NewState(), domain.KeySourcePath, "votes.txt")
	newState, err := wrapped.Execute(context.Background(), state)
	require.NoError(t, err)

	header, ok := domain.Get(newState, domain.KeyHeader)
	require.True(t, ok)
	assert.Equal(t, "touched", header)

	assert.Equal(t, []string{"unit_execute"}, rc.latencies)
	require.Len(t, rc.counters, 1)
	assert.Equal(t, "pass", rc.counters[0]["unit"])
	assert.Empty(t, rc.counters[0]["status"])
}

func TestObservedUnit_ErrorPropagatesUnchanged(t *testing.T) {
	rc := &recordingCollector{}
	wrapped := Observe(failUnit{}, rc)

	_, err := wrapped.Execute(context.Background(), domain.NewState())
	require.Error(t, err)

	var fe *domain.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, domain.KindMalformedBallot, fe.Kind)
	assert.Equal(t, 2, fe.Line)

	require.Len(t, rc.counters, 1)
	assert.Equal(t, "error", rc.counters[0]["status"])
	assert.Equal(t, "MalformedBallot", rc.counters[0]["kind"])
}

func TestObservedUnit_NilMetrics(t *testing.T) {
	wrapped := Observe(passUnit{}, nil)
	_, err := wrapped.Execute(context.Background(), domain.NewState())
	assert.NoError(t, err)
}

func TestObservedUnit_ValidateDelegates(t *testing.T) {
	assert.NoError(t, Observe(passUnit{}, nil).Validate())
	assert.Error(t, Observe(failUnit{}, nil).Validate())
}

func TestObserveAll(t *testing.T) {
	rc := &recordingCollector{}
	wrapped := ObserveAll([]ports.Unit{passUnit{}, failUnit{}}, rc)

	require.Len(t, wrapped, 2)
	assert.Equal(t, "pass", wrapped[0].Name())
	assert.Equal(t, "fail", wrapped[1].Name())
}
