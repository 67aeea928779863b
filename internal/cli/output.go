package cli

import (
	"fmt"
	"os"

	"github.com/cybertec-postgresql/scankit/internal/report"
)

// writeReport formats rep to the configured output
func writeReport(config *Config, rep *report.Report) error {
	if !report.ValidFormat(config.Format) {
		return fmt.Errorf("unsupported format: %s (supported: %v)", config.Format, report.SupportedFormats())
	}

	formatter, err := report.GetFormatter(report.FormatType(config.Format))
	if err != nil {
		return err
	}

	outputPath := config.Output
	var writer *os.File
	if outputPath == "-" || outputPath == "" {
		writer = os.Stdout
	} else {
		writer, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer writer.Close()
	}

	if err := formatter.Format(rep, writer); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	// Print success message to stderr (so it doesn't interfere with stdout output)
	if outputPath != "-" && outputPath != "" {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outputPath)
	}
	return nil
}
