package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/fire-calculator/internal/config"
	"github.com/rpgo/fire-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newProjectCommand() *cobra.Command {
	var (
		flags   engineFlags
		format  string
		saveDir string
	)
	cmd := &cobra.Command{
		Use:   "project <snapshot.yaml>",
		Short: "Run a projection for a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			w, err := flags.build(cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}
			defer w.close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := w.engine.Run(ctx, *snap)
			if err != nil {
				return err
			}

			if saveDir != "" {
				f := output.GetFormatterByName(format)
				if f == nil {
					return fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
				}
				path, err := output.WriteFormatted(f, result, saveDir)
				if err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", path)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), result, format)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format (console, csv, epochs, json)")
	cmd.Flags().StringVar(&saveDir, "save", "", "write the report to a timestamped file in this directory")
	return cmd
}
