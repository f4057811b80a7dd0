// Package engine evaluates the insight recommendation policy with OPA Rego.
package engine

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const recommendationsQuery = "data.healthtrack.insights.recommendations"

//go:embed policy.rego
var defaultPolicy string

// OPAEngine turns computed insight facts into recommendations.
type OPAEngine struct {
	query rego.PreparedEvalQuery
}

// NewOPAEngine compiles modules, or the built-in policy when none are given. Every module
// must declare package healthtrack.insights.
func NewOPAEngine(ctx context.Context, modules ...string) (*OPAEngine, error) {
	if len(modules) == 0 {
		modules = []string{defaultPolicy}
	}
	files := make(map[string]string, len(modules))
	for i, m := range modules {
		files[fmt.Sprintf("policy_%d.rego", i)] = m
	}
	compiler, err := ast.CompileModules(files)
	if err != nil {
		return nil, fmt.Errorf("compile insights policy: %w", err)
	}
	q, err := rego.New(
		rego.Query(recommendationsQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare insights query: %w", err)
	}
	return &OPAEngine{query: q}, nil
}

// Recommend evaluates the policy against input and returns the recommendation texts by priority.
func (e *OPAEngine) Recommend(ctx context.Context, input map[string]any) ([]string, error) {
	rs, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, fmt.Errorf("eval insights policy: %w", err)
	}
	out := []string{}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return out, nil
	}
	items, ok := rs[0].Expressions[0].Value.([]any)
	if !ok {
		return nil, fmt.Errorf("insights policy returned %T, want a set", rs[0].Expressions[0].Value)
	}
	type rec struct {
		priority float64
		text     string
	}
	recs := make([]rec, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		text, _ := obj["text"].(string)
		if text == "" {
			continue
		}
		recs = append(recs, rec{priority: number(obj["priority"]), text: text})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].priority != recs[j].priority {
			return recs[i].priority < recs[j].priority
		}
		return recs[i].text < recs[j].text
	})
	for _, r := range recs {
		out = append(out, r.text)
	}
	return out, nil
}

// HealthCheck evaluates the compiled policy against a minimal input.
func (e *OPAEngine) HealthCheck(ctx context.Context) error {
	recs, err := e.Recommend(ctx, map[string]any{"measurement_count": 0})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("insights policy returned no result")
	}
	return nil
}

func number(v any) float64 {
	switch n := v.(type) {
	case json.Number:
		f, _ := n.Float64()
		return f
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}
