// Package validate checks generated dashboards and rule files: every PromQL
// expression must parse and reference only metrics auction-monitor exports
// or its recording rules define.
package validate

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/auction-monitor/tools/dashgen/rules"
)

// histogramSuffixes are the series a histogram exposes beyond its base name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings are
// informational.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Expr parses a single expression and checks its metric references against
// known.
func Expr(expr string, known map[string]bool) Result {
	var res Result

	e, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid PromQL %q: %v", expr, err))
		return res
	}

	names := MetricNames(e)
	if len(names) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("expression %q selects no metrics", expr))
	}
	for _, name := range names {
		if !isKnown(name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown metric %q in %q", name, expr))
		}
	}
	return res
}

// MetricNames returns the metric names selected by e, in order of appearance.
func MetricNames(e parser.Expr) []string {
	var names []string
	parser.Inspect(e, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names
}

// Dashboard validates every panel target expression in dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(tree, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard has no query targets")
	}
	for _, expr := range exprs {
		res.merge(Expr(expr, known))
	}
	return res
}

// Rules validates every rule expression across crs. Records defined in any
// of the CRs count as known metrics.
func Rules(known map[string]bool, crs ...rules.PrometheusRule) Result {
	var res Result

	all := make(map[string]bool, len(known))
	for k, v := range known {
		all[k] = v
	}
	for _, cr := range crs {
		for _, name := range cr.Records() {
			all[name] = true
		}
	}

	for _, cr := range crs {
		for _, g := range cr.Spec.Groups {
			for _, r := range g.Rules {
				if (r.Record == "") == (r.Alert == "") {
					res.Errors = append(res.Errors,
						fmt.Sprintf("%s/%s: rule must set exactly one of record or alert", cr.Metadata.Name, g.Name))
					continue
				}
				res.merge(Expr(r.Expr, all))
			}
		}
	}
	return res
}

func collectExprs(node any, out []string) []string {
	switch v := node.(type) {
	case map[string]any:
		if expr, ok := v["expr"].(string); ok && expr != "" {
			out = append(out, expr)
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if k == "expr" {
				continue
			}
			out = collectExprs(v[k], out)
		}
	case []any:
		for _, item := range v {
			out = collectExprs(item, out)
		}
	}
	return out
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
