package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	editTitle   string
	editContent string
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change the title or content of a note",
	Long:  `Flags that are not given keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		svc, ctl, err := openController(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		n, ok := ctl.Find(id)
		if !ok {
			return fmt.Errorf("%s: %w", id, core.ErrNotFound)
		}
		ctl.StartEdit(n)

		title, content := n.Title, n.Content
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		if cmd.Flags().Changed("content") {
			content = editContent
		}

		updated, err := ctl.Save(cmd.Context(), title, content)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), updated.ID)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "m", "", "New content")
	rootCmd.AddCommand(editCmd)
}
