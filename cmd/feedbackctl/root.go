package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"feedback-intel-go/internal/generator"
)

// newRootCmd builds a fresh command tree so tests can run it in isolation.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "feedbackctl",
		Short: "Classify, score and summarize customer feedback",
		Long: `feedbackctl runs the feedback classifier and scorer from the terminal.

Examples:
  feedbackctl classify "Our site is down, this is unacceptable"
  feedbackctl generate --n 100 --seed 42 --format csv --out feedback.csv
  feedbackctl insights --seed 42`,
		SilenceUsage: true,
	}
	root.AddCommand(newClassifyCmd(), newGenerateCmd(), newInsightsCmd())
	return root
}

// batchFlags are shared by commands that work on a synthetic batch.
type batchFlags struct {
	n    int
	seed int64
}

func (b *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&b.n, "n", generator.DefaultSize, "number of feedback items to generate")
	cmd.Flags().Int64Var(&b.seed, "seed", 0, "random seed (omit for a fresh batch)")
}

// seedPtr is nil unless --seed was given explicitly.
func (b *batchFlags) seedPtr(cmd *cobra.Command) *int64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	return generator.Seed(b.seed)
}

func (b *batchFlags) validate() error {
	if b.n < 0 {
		return fmt.Errorf("--n must be >= 0, got %d", b.n)
	}
	return nil
}

var now = time.Now

// output returns the writer for --out, or the command's stdout.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
