// Package oracle defines the contract between the synthetic-lethal search and
// the optimization backend that judges lethality.
//
// The search core never solves anything itself: flux-balance and
// parsimonious-flux solves (or any other numeric objective) live behind the
// Oracle interface. Implementations adapt external solver libraries; the
// StaticOracle in this package is a deterministic in-memory implementation
// used by tests and examples.
package oracle

import (
	"context"
	"math"

	"github.com/Braden-Griebel/fastsl/model"
)

// Evaluation is the outcome of evaluating one combination's removal.
//
// An infeasible solve reports Objective = NaN and Lethal = true: the search
// treats infeasibility identically to "objective at or below the cutoff".
type Evaluation struct {
	// Objective is the objective value of the perturbed system, or NaN when
	// the underlying solve was infeasible.
	Objective float64

	// Lethal reports whether the combination is lethal: the solve was
	// infeasible or the objective is at or below the essential cutoff.
	Lethal bool
}

// Infeasible reports whether the underlying solve had no feasible solution.
func (e Evaluation) Infeasible() bool {
	return math.IsNaN(e.Objective)
}

// Oracle answers lethality and candidate-expansion queries against a private
// copy of the baseline system state.
//
// Implementations must be safe for concurrent use: every call operates on an
// isolated copy (or scoped checkout) of the state it is given, so concurrent
// evaluations never observe each other's transient removals. Long-running
// solves should honor ctx cancellation.
//
// Any failure other than an infeasible solve is returned as an error and is
// fatal to the whole search; infeasibility is a lethality signal, not an
// error.
type Oracle interface {
	// Evaluate applies the combination's removals, computes the objective,
	// and compares it against essentialCutoff. Evaluating the empty
	// combination yields the unperturbed baseline objective.
	Evaluate(ctx context.Context, combination []model.Item, essentialCutoff float64) (Evaluation, error)

	// CandidateExpansions returns the items judged potentially active in the
	// state perturbed by the (non-lethal) combination. Called with an empty
	// combination it seeds the first search depth from the baseline. Items
	// already in the combination may be included; the search filters them.
	CandidateExpansions(ctx context.Context, combination []model.Item) ([]model.Item, error)

	// IsSingleItemEssential reports whether removing item on top of the
	// already-removed background is independently lethal. The search uses
	// this as a pruning pre-check to record a child combination directly
	// instead of cycling it through the queue.
	IsSingleItemEssential(ctx context.Context, background []model.Item, item model.Item, essentialCutoff float64) (bool, error)
}
