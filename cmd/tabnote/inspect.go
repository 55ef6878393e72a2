package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tabnote/internal/analysis"
	"tabnote/internal/dataset"
)

var inspectKinds []string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.csv|file.xlsx>",
	Short: "Summarize a tabular file offline with the local provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		ds, err := dataset.Ingest(filepath.Base(path), f)
		if err != nil {
			return err
		}

		header := color.New(color.FgCyan, color.Bold)
		name := color.New(color.FgYellow)
		header.Printf("%s\n", filepath.Base(path))
		fmt.Printf("%d columns, %d rows (fingerprint %s)\n\n", ds.ColumnCount(), ds.RowCount(), ds.Fingerprint())

		provider := analysis.NewLocal()
		for _, raw := range inspectKinds {
			kind, known := analysis.ParseKind(raw)
			if !known {
				fmt.Printf("(%q is not a known kind, running descriptive)\n", raw)
			}
			res, err := provider.Analyze(context.Background(), ds, kind)
			if err != nil {
				return err
			}
			header.Printf("%s\n", res.Title)
			for _, st := range res.Stats {
				name.Printf("  %-24s", st.Name)
				fmt.Printf(" %s\n", st.Value)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringSliceVar(&inspectKinds, "kind", []string{"descriptive", "missing-data"}, "analysis kinds to run")
	rootCmd.AddCommand(inspectCmd)
}
