package units

import (
	"context"
	"strings"

	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

var _ ports.Unit = (*HeaderUnit)(nil)

// HeaderUnit validates the candidate header line and produces the ordered
// candidate list. A header is rejected when it is empty or when splitting
// on the delimiter yields an empty element, which simultaneously detects a
// leading delimiter, a trailing delimiter, and two consecutive delimiters.
//
// Candidate name content is deliberately not inspected: interior
// whitespace is preserved verbatim and duplicate names are tolerated.
// Downstream stages track candidates by position, so duplicates never
// merge scores.
//
// Concurrency: the unit is stateless and safe for concurrent execution.
type HeaderUnit struct {
	// name is the unique identifier for this unit instance.
	name string
}

// NewHeaderUnit creates a HeaderUnit with the given name.
// Returns ErrEmptyUnitName if name is empty.
func NewHeaderUnit(name string) (*HeaderUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	return &HeaderUnit{name: name}, nil
}

// Name returns the unique identifier for this unit instance.
func (hu *HeaderUnit) Name() string { return hu.name }

// Execute reads the raw header line from state, validates it, and stores
// the resulting candidate list under domain.KeyCandidates.
//
// A missing header line indicates a mis-assembled pipeline and is
// reported as an internal error rather than a user-facing validation
// message.
func (hu *HeaderUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	header, ok := domain.Get(state, domain.KeyHeader)
	if !ok {
		return state, domain.NewInternalError(hu.name, ErrMissingHeader)
	}

	candidates, err := ParseHeader(header)
	if err != nil {
		return state, err
	}

	return domain.With(state, domain.KeyCandidates, candidates), nil
}

// ParseHeader splits a trimmed header line into the ordered candidate
// list. It fails with a MalformedHeader error when the line is empty or
// any split element is empty. A single candidate with no delimiter at all
// is valid.
func ParseHeader(header string) (domain.CandidateList, error) {
	// Redundant with the empty-element check below, since splitting an
	// empty string yields one empty element, but it gives the user a more
	// precise message for the most likely broken file.
	if len(header) == 0 {
		return nil, domain.NewFormatError(domain.KindMalformedHeader,
			"empty candidate line in input file")
	}

	parts := strings.Split(header, Delimiter)
	for _, part := range parts {
		if part == "" {
			return nil, domain.NewFormatError(domain.KindMalformedHeader,
				"candidate line contains a leading/trailing semicolon or multiple semicolons between candidates")
		}
	}

	return domain.CandidateList(parts), nil
}

// Validate checks if the unit is properly configured and ready for
// execution.
func (hu *HeaderUnit) Validate() error {
	if hu.name == "" {
		return ErrEmptyUnitName
	}
	return nil
}
