package fastsl

import (
	"errors"
	"fmt"

	"github.com/Braden-Griebel/fastsl/model"
)

var (
	// ErrInvalidMaxDepth is returned when the configured max depth is < 1.
	ErrInvalidMaxDepth = errors.New("max depth must be at least 1")

	// ErrInvalidEssentialProportion is returned when the configured
	// essential proportion is outside (0, 1].
	ErrInvalidEssentialProportion = errors.New("essential proportion must be in (0, 1]")

	// ErrInvalidWorkerCount is returned when the configured worker count
	// is < 1.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrNoCandidates is returned when the unperturbed baseline yields no
	// candidate items at depth 1. It distinguishes "no candidates were
	// generated" from the empty result of "nothing is essential".
	ErrNoCandidates = errors.New("baseline yielded no candidate items")

	// ErrInfeasibleBaseline is returned when the unperturbed baseline itself
	// has no feasible solution, so no essential cutoff can be derived.
	ErrInfeasibleBaseline = errors.New("baseline objective is infeasible")
)

// OracleError indicates that an oracle call failed for a reason other than
// infeasibility. It is fatal: the search aborts all workers and returns no
// partial results.
//
// The original underlying error can be accessed via errors.Unwrap.
type OracleError struct {
	// Op is the oracle operation that failed ("evaluate",
	// "candidate-expansions", "single-item-essential").
	Op string

	// Combination is the combination the call was made for.
	Combination []model.Item

	cause error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s failed for combination %v: %v", e.Op, e.Combination, e.cause)
}

func (e *OracleError) Unwrap() error { return e.cause }
