package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabnote",
	Short: "tabnote: tabular analysis notebook",
	Long:  "tabnote serves an interactive analysis notebook over HTTP and can summarize tabular files offline.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
