package main

import (
	"fmt"

	"github.com/rpgo/fire-calculator/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example snapshot as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := config.NewInputParser().CreateExampleSnapshot()
			b, err := yaml.Marshal(snap)
			if err != nil {
				return fmt.Errorf("failed to encode example: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
