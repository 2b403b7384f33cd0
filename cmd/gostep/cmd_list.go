package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Step", "Arity", "Description"})
			for _, b := range sortedBuiltins() {
				arity := "unary"
				if b.binary {
					arity = "binary"
				}
				t.AppendRow(table.Row{b.name, arity, b.summary})
			}
			t.Render()
			return nil
		},
	}
}
