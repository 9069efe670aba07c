package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve <job-id>",
	Short: "Approve a generated schema and materialize the database",
	Long:  "Approves the schema of a job awaiting approval and creates the SQLite database from it. With --reject the job stays awaiting approval and nothing is created.",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

var (
	approveDBName string
	approveReject bool
)

func init() {
	approveCmd.Flags().StringVar(&approveDBName, "db-name", "", "Name for the created database (defaults to a name derived from the job ID)")
	approveCmd.Flags().BoolVar(&approveReject, "reject", false, "Withhold approval instead of materializing")

	rootCmd.AddCommand(approveCmd)
}

func runApprove(_ *cobra.Command, args []string) error {
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

	job, err := application.orchestrator.Finalize(ctx, id, approveDBName, !approveReject)
	if err != nil {
		return fmt.Errorf("failed to finalize job: %w", err)
	}

	if approveReject {
		_, _ = fmt.Fprintf(os.Stdout, "Job %s left awaiting approval\n", job.ID)
		return nil
	}

	application.printer.PrintMaterialization(job.Database)
	_, _ = fmt.Fprintf(os.Stdout, "Database created at %s\n", job.Database.DatabasePath)

	return nil
}
