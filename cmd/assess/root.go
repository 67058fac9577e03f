// cmd/assess/root.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"infraiq-workers/internal/common/config"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/scoring"

	"github.com/spf13/cobra"
)

type options struct {
	file     string
	weights  string
	logLevel string
	pretty   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "assess",
		Short:         "Score AI infrastructure maturity assessments",
		Long:          "assess scores, reports on and validates assessment responses stored as JSON or YAML files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Assessment response file (.json, .yaml, .yml, or - for stdin JSON)")
	root.PersistentFlags().StringVar(&opts.weights, "weights", "", "Pillar weights as cognitive,operational,strategic,livingSystems (must sum to 1)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", true, "Indent JSON output")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newScoreCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	return root
}

func (o *options) logger() logger.Logger {
	return logger.NewStructured(o.logLevel, "console")
}

// resolveWeights returns --weights when set, otherwise the configured
// defaults.
func (o *options) resolveWeights() (scoring.Weights, error) {
	if o.weights == "" {
		return config.Default().Scoring.Weights, nil
	}
	return parseWeights(o.weights)
}

func parseWeights(s string) (scoring.Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return scoring.Weights{}, fmt.Errorf("--weights needs 4 comma-separated values, got %d", len(parts))
	}
	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return scoring.Weights{}, fmt.Errorf("--weights value %q: %w", p, err)
		}
		values[i] = v
	}
	w := scoring.Weights{
		Cognitive:     values[0],
		Operational:   values[1],
		Strategic:     values[2],
		LivingSystems: values[3],
	}
	if err := w.Validate(); err != nil {
		return scoring.Weights{}, err
	}
	return w, nil
}
