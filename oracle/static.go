package oracle

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Braden-Griebel/fastsl/model"
)

// Compile time check to ensure StaticOracle satisfies the Oracle interface.
var _ Oracle = (*StaticOracle)(nil)

// StaticOracle is a deterministic in-memory Oracle implementation.
//
// It is configured with a baseline objective, the universe of removable
// items, and per-combination objective overrides. Combinations without an
// override keep the baseline objective (their removal has no effect).
// StaticOracle is read-only after construction and therefore safe for
// concurrent use without copying.
//
// It exists for tests, examples, and wiring checks; production callers adapt
// a real solver behind the Oracle interface instead.
type StaticOracle struct {
	baseline   float64
	items      []model.Item
	objectives map[string]float64
	activeFunc func(combination []model.Item) []model.Item
}

// StaticOption configures a StaticOracle.
type StaticOption func(*StaticOracle)

// WithObjective sets the objective value reported for the exact combination.
// Pass math.NaN() to make the combination infeasible.
func WithObjective(combination []model.Item, objective float64) StaticOption {
	return func(o *StaticOracle) {
		o.objectives[comboKey(combination)] = objective
	}
}

// WithInfeasible marks the exact combination as infeasible.
func WithInfeasible(combination ...model.Item) StaticOption {
	return WithObjective(combination, math.NaN())
}

// WithActiveItems overrides candidate expansion. The function receives the
// removed combination and returns the items considered potentially active in
// the perturbed state. The default reports every configured item not already
// in the combination.
func WithActiveItems(fn func(combination []model.Item) []model.Item) StaticOption {
	return func(o *StaticOracle) {
		o.activeFunc = fn
	}
}

// NewStatic creates a StaticOracle with the given unperturbed baseline
// objective and removable item universe.
func NewStatic(baselineObjective float64, items []model.Item, optFns ...StaticOption) *StaticOracle {
	o := &StaticOracle{
		baseline:   baselineObjective,
		items:      append([]model.Item(nil), items...),
		objectives: make(map[string]float64),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(o)
		}
	}
	return o
}

// Evaluate implements Oracle.
func (o *StaticOracle) Evaluate(ctx context.Context, combination []model.Item, essentialCutoff float64) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	objective := o.objective(combination)
	return Evaluation{
		Objective: objective,
		Lethal:    math.IsNaN(objective) || objective <= essentialCutoff,
	}, nil
}

// CandidateExpansions implements Oracle.
func (o *StaticOracle) CandidateExpansions(ctx context.Context, combination []model.Item) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.activeFunc != nil {
		return o.activeFunc(combination), nil
	}
	removed := make(map[model.Item]struct{}, len(combination))
	for _, it := range combination {
		removed[it] = struct{}{}
	}
	active := make([]model.Item, 0, len(o.items))
	for _, it := range o.items {
		if _, ok := removed[it]; !ok {
			active = append(active, it)
		}
	}
	return active, nil
}

// IsSingleItemEssential implements Oracle by evaluating background plus item.
func (o *StaticOracle) IsSingleItemEssential(ctx context.Context, background []model.Item, item model.Item, essentialCutoff float64) (bool, error) {
	ev, err := o.Evaluate(ctx, append(append([]model.Item(nil), background...), item), essentialCutoff)
	if err != nil {
		return false, err
	}
	return ev.Lethal, nil
}

func (o *StaticOracle) objective(combination []model.Item) float64 {
	if obj, ok := o.objectives[comboKey(combination)]; ok {
		return obj
	}
	return o.baseline
}

// comboKey canonicalizes a combination: duplicates collapse and order is
// irrelevant, matching Combination equality semantics.
func comboKey(combination []model.Item) string {
	seen := make(map[model.Item]struct{}, len(combination))
	unique := make([]string, 0, len(combination))
	for _, it := range combination {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		unique = append(unique, string(it))
	}
	sort.Strings(unique)
	return strings.Join(unique, "\x1f")
}
