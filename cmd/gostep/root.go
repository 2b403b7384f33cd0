package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gostep",
		Short: "Perform processing steps on command-line inputs",
		Long: "gostep wraps built-in transformations as processing steps and performs\n" +
			"them on each input, reporting every failure as a processing error.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPerformCmd())
	return cmd
}
