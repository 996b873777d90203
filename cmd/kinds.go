package cmd

import (
	"strings"

	"commission-comparer/feature/commission"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// kindsCmd lists the supported document kinds and their schemas.
var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List supported statement kinds",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Kind", "Identity", "Values", "Header")
		for _, kind := range commission.Kinds() {
			schema := commission.MustLookup(kind).Schema()

			var identity, values, header []string
			for _, f := range schema.IdentityFields() {
				identity = append(identity, f.Name)
			}
			for _, f := range schema.Fields {
				if !f.Identity {
					values = append(values, f.Name)
				}
			}
			if schema.Open {
				values = append(values, "*")
			}
			for _, f := range schema.Header {
				header = append(header, f.Name)
			}

			row := []string{kind, strings.Join(identity, ", "), strings.Join(values, ", "), strings.Join(header, ", ")}
			if err := table.Append(row); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	RootCmd.AddCommand(kindsCmd)
}
