package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"feedback-intel-go/internal/dataset"
	"feedback-intel-go/internal/generator"
)

func newGenerateCmd() *cobra.Command {
	var (
		batch  batchFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic, classified feedback batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := batch.validate(); err != nil {
				return err
			}
			switch format {
			case "json", "csv":
			case "xlsx":
				if out == "" || out == "-" {
					return fmt.Errorf("--format xlsx needs --out")
				}
			default:
				return fmt.Errorf("unknown format %q (json, csv, xlsx)", format)
			}
			records := generator.Generate(batch.n, now(), batch.seedPtr(cmd))

			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				err = enc.Encode(records)
			case "csv":
				err = dataset.ExportCSV(records, w)
			case "xlsx":
				err = dataset.ExportXLSX(records, w)
			}
			if cerr := closeFn(); err == nil {
				err = cerr
			}
			return err
		},
	}
	batch.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, csv, xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}
