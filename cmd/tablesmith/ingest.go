package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/tablesmith/internal/types"
	"github.com/jonathan/tablesmith/internal/workflow"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Upload files, analyze them and generate a schema proposal",
	Long:  "Parses the given data files, analyzes their structure and runs the iterative schema refinement loop. The job then waits for approval; run 'tablesmith approve' to materialize the database.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

var ingestRequirements string

func init() {
	ingestCmd.Flags().StringVarP(&ingestRequirements, "requirements", "r", "", "Natural-language description of what the database should support (required)")

	if err := ingestCmd.MarkFlagRequired("requirements"); err != nil {
		panic(fmt.Sprintf("failed to mark requirements flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer application.close()

	files := make([]types.FileRef, 0, len(args))
	for _, arg := range args {
		absolute, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", arg, err)
		}
		files = append(files, types.FileRef{Name: filepath.Base(arg), Path: absolute})
	}

	job, err := application.orchestrator.Start(ctx, workflow.UploadRequest{
		Files:        files,
		Requirements: ingestRequirements,
	})
	if err != nil {
		return fmt.Errorf("failed to start ingestion: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Created job %s\n", job.ID)

	job, err = application.orchestrator.ProcessFiles(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("failed to process files: %w", err)
	}
	if application.cfg.Verbose {
		application.printer.PrintAnalysis(job.Analysis)
	}

	job, err = application.orchestrator.GenerateSchema(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if application.cfg.Verbose {
		application.printer.PrintSchemaResult(job.Schema)
	}

	_, _ = fmt.Fprintln(os.Stdout)
	_, _ = fmt.Fprintln(os.Stdout, job.Schema.SchemaDescription)
	_, _ = fmt.Fprintln(os.Stdout)
	_, _ = fmt.Fprintf(os.Stdout, "Schema ready after %d round(s). Approve with:\n", job.Schema.RoundsTaken)
	_, _ = fmt.Fprintf(os.Stdout, "  tablesmith approve %s --db-name <name>\n", job.ID)

	return nil
}
