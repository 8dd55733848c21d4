package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"feedback-intel-go/internal/actionable"
	"feedback-intel-go/internal/aggregator"
	"feedback-intel-go/internal/generator"
)

type insightsOutput struct {
	Insight aggregator.Insight      `json:"insight"`
	Actions []actionable.ActionCard `json:"actions"`
}

func newInsightsCmd() *cobra.Command {
	var batch batchFlags
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print dashboard rollups and action cards for a synthetic batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := batch.validate(); err != nil {
				return err
			}
			records := generator.Generate(batch.n, now(), batch.seedPtr(cmd))
			ins := aggregator.Aggregate(records)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(insightsOutput{Insight: ins, Actions: actionable.Generate(ins)})
		},
	}
	batch.register(cmd)
	return cmd
}
