// Command dashgen generates the auction-monitor Grafana dashboard and
// Prometheus rule files from Go definitions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/auction-monitor/tools/dashgen/dashboards"
	"github.com/donaldgifford/auction-monitor/tools/dashgen/rules"
	"github.com/donaldgifford/auction-monitor/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Printf("validation passed (%d artifacts)\n", len(artifacts))
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds and validates every enabled artifact.
func generate(cfg Config) ([]artifact, error) {
	var out []artifact

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building dashboard: %w", err)
		}
		if err := check("dashboard", validate.Dashboard(dash, KnownMetrics)); err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		out = append(out, artifact{
			path: filepath.Join("grafana", "data", dashboards.UID+".json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		recording, alerts := rules.RecordingRules(), rules.AlertRules()
		if err := check("rules", validate.Rules(KnownMetrics, recording, alerts)); err != nil {
			return nil, err
		}
		for _, cr := range []rules.PrometheusRule{recording, alerts} {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, fmt.Errorf("marshaling %s: %w", cr.Metadata.Name, err)
			}
			out = append(out, artifact{
				path: filepath.Join("prometheus", cr.Metadata.Name+".yaml"),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	return out, nil
}

func check(what string, res validate.Result) error {
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "dashgen: %s warning: %s\n", what, w)
	}
	if res.Ok() {
		return nil
	}
	return fmt.Errorf("%s validation failed:\n  %s", what, strings.Join(res.Errors, "\n  "))
}

