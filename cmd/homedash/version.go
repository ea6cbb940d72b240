package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/txn2/homedash/internal/server"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the homedash version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "homedash %s\n", server.Version)
			return err
		},
	}
}
