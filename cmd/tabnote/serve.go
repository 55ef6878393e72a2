package main

import (
	"strings"

	"github.com/spf13/cobra"

	"tabnote/internal/app"
	"tabnote/internal/config"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notebook HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if p := strings.TrimSpace(servePort); p != "" {
			if !strings.HasPrefix(p, ":") {
				p = ":" + p
			}
			cfg.Port = p
		}
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		return a.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}
