package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addTitle   string
	addContent string
)

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a note",
	Example: `  jot add --title "Groceries" --content "milk, eggs"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, ctl, err := openController(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		ctl.StartCreate()
		n, err := ctl.Save(cmd.Context(), addTitle, addContent)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title (required)")
	addCmd.Flags().StringVarP(&addContent, "content", "m", "", "Note content")
	rootCmd.AddCommand(addCmd)
}
