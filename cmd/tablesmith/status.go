package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the current stage and progress of an ingestion job",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var statusShowSchema bool

func init() {
	statusCmd.Flags().BoolVar(&statusShowSchema, "schema", false, "Also print the generated schema description")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid job ID: %w", err)
	}

	application, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer application.close()

	status, err := application.orchestrator.Status(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	application.printer.PrintJobStatus(status)

	if statusShowSchema && status.HasSchema {
		schema, err := application.orchestrator.Schema(ctx, id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(os.Stdout)
		_, _ = fmt.Fprintln(os.Stdout, schema.SchemaDescription)
	}

	return nil
}
