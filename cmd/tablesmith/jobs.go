package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List all ingestion jobs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	application, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer application.close()

	statuses, err := application.orchestrator.Jobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No jobs found")
		return nil
	}

	for _, status := range statuses {
		_, _ = fmt.Fprintf(os.Stdout, "%s  %-18s  %d file(s)  updated %s\n",
			status.ID, status.Stage, len(status.Files), status.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
