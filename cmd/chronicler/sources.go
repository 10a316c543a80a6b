package main

import (
	"fmt"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"

	"github.com/spf13/cobra"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the data sources with a registered eventizer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range eventizer.Default().Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
