// Package main provides the tablesmith CLI for AI-driven data ingestion.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablesmith",
	Short: "AI-driven data ingestion into SQLite",
	Long:  "Tablesmith parses CSV, TSV, JSON, Excel and text files, analyzes their structure, iteratively designs a relational schema with an LLM and materializes the approved schema as a SQLite database.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
