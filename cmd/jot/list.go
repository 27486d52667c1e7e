package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/view"
)

var (
	listJSON  bool
	listYAML  bool
	listMatch string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, most recently touched first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listJSON && listYAML {
			return errors.New("--json and --yaml are mutually exclusive")
		}

		svc, ctl, err := openController(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Close()

		notes, err := view.Match(ctl.Sorted(), listMatch)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case listJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(notes)
		case listYAML:
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(notes); err != nil {
				return err
			}
			return enc.Close()
		}

		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUPDATED\tTITLE")
		for _, n := range notes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Touched().Local().Format(time.DateTime), n.Title)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output as YAML")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only notes whose title matches the glob pattern")
	rootCmd.AddCommand(listCmd)
}
