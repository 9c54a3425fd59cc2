package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadzzz/playcue/internal/interpreter"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the supported command shapes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		usage := interpreter.Usage()
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), usage)
		}
		for _, line := range usage {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}
