package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/tablesmith/internal/formats"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input file formats",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		for _, extension := range formats.SupportedExtensions() {
			format := formats.Resolve(extension)
			maxMB := formats.MaxFileSize(format) / (1024 * 1024)
			_, _ = fmt.Fprintf(os.Stdout, "%-8s %-6s up to %d MB\n", extension, format, maxMB)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
