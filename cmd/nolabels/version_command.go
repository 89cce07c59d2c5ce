package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nolabels/internal/config"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the nolabels version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "nolabels %s\n", config.Version)
			return nil
		},
	}
}
