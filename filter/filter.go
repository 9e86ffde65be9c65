// Package filter evaluates user-supplied expressions against college
// recommendations, e.g. `TrustScore > 80 && Category != "Reach"`.
package filter

import (
	"encoding/json"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Recommendation is the environment a filter expression is evaluated
// against.
type Recommendation struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	TrustScore float64 `json:"trust_score"`
	Category   string  `json:"category"`
}

// Filter is a compiled, reusable filter expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter. The expression
// must evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression, expr.Env(environment(Recommendation{})), expr.AsBool())
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single recommendation.
func (f *Filter) Match(rec Recommendation) (bool, error) {
	out, err := expr.Run(f.program, environment(rec))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Name:       rec.Name,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Name:       rec.Name,
			Reason:     "expression did not evaluate to a boolean",
		}
	}
	return matched, nil
}

// Apply returns the recommendations the filter matches, preserving order.
func (f *Filter) Apply(recs []Recommendation) ([]Recommendation, error) {
	matched := make([]Recommendation, 0, len(recs))
	for _, rec := range recs {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// FromPayload extracts recommendations from an API or fallback payload of
// the shape {"recommendations": [...]}. Entries that do not decode are
// skipped; a payload without the key yields an empty slice.
func FromPayload(payload map[string]any) []Recommendation {
	raw, ok := payload["recommendations"].([]any)
	if !ok {
		return nil
	}

	recs := make([]Recommendation, 0, len(raw))
	for _, entry := range raw {
		data, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		var rec Recommendation
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

func environment(rec Recommendation) map[string]any {
	return map[string]any{
		"ID":         rec.ID,
		"Name":       rec.Name,
		"Location":   rec.Location,
		"TrustScore": rec.TrustScore,
		"Category":   rec.Category,
	}
}
