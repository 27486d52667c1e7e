package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/pkg/core"
)

// statusReport is the document printed by jot status.
type statusReport struct {
	Config  *config.Config    `json:"config"`
	File    string            `json:"config_file,omitempty"`
	Service core.ServiceState `json:"service"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active configuration and backend state as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer svc.Close()

		report := statusReport{
			Config:  cfg,
			File:    viper.ConfigFileUsed(),
			Service: svc.State().(core.ServiceState),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
