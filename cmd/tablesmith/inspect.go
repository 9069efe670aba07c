package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [database]",
	Short: "Inspect a materialized database, or list databases",
	Long:  "Without arguments lists every materialized database. With a database name prints its tables, columns and live row counts.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer application.close()

	if len(args) == 0 {
		names, err := application.builder.ListDatabases()
		if err != nil {
			return fmt.Errorf("failed to list databases: %w", err)
		}
		if len(names) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No databases found")
			return nil
		}
		for _, name := range names {
			_, _ = fmt.Fprintln(os.Stdout, name)
		}
		return nil
	}

	tables, err := application.builder.Introspect(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}

	for _, table := range tables {
		_, _ = fmt.Fprintf(os.Stdout, "%s (%d rows)\n", table.Name, table.RowCount)
		for _, column := range table.Columns {
			flags := ""
			if column.PrimaryKey {
				flags += "  PRIMARY KEY"
			}
			if column.NotNull {
				flags += "  NOT NULL"
			}
			_, _ = fmt.Fprintf(os.Stdout, "  %-24s %s%s\n", column.Name, column.Type, flags)
		}
		_, _ = fmt.Fprintln(os.Stdout)
	}

	return nil
}
