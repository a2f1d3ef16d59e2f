// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/codetown/votecount/internal/domain"
)

// Unit represents one stage of the vote counting pipeline.
// Each Unit performs a specific transformation on the pipeline State,
// consuming the prior stage's output and failing fast on invalid input.
// Units should be stateless: they retain nothing between file loads and
// are safe to reuse across sequential runs.
type Unit interface {
	// Name returns a unique identifier for this unit.
	// The name is used for logging, metrics, and tracing.
	Name() string

	// Execute performs the unit's transformation on the provided State.
	// It returns a new State containing the results of the transformation.
	// The original State should not be modified (immutability principle).
	// Validation failures are returned as typed errors from the domain
	// taxonomy, never raised through panics.
	//
	// The context parameter allows for cancellation and deadline
	// propagation by wrapping middleware; the core units complete quickly
	// and do not block.
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate checks if the unit is properly configured and ready for
	// execution. It is typically called during pipeline construction.
	// Return nil if validation passes, or an error describing what is
	// invalid.
	Validate() error
}
