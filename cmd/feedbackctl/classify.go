package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"feedback-intel-go/internal/processor"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify and score a single piece of feedback",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scored := processor.ClassifyAndScore(strings.Join(args, " "))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scored)
		},
	}
}
