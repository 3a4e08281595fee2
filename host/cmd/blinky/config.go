package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"blinky/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the compiled-in board description as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.DefaultJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
