package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/certiseal/certiseal/pkg/rating"
	"github.com/certiseal/certiseal/pkg/render"
)

func newExportCmd() *cobra.Command {
	var (
		format       string
		outPath      string
		name         string
		manufacturer string
		testNumber   string
	)

	cmd := &cobra.Command{
		Use:   "export <values.json>",
		Short: "Render a test report from a rating file",
		Long:  `Renders the full test report as CSV or HTML, to stdout or a file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, computed, err := loadRating(args[0])
			if err != nil {
				return err
			}
			info := render.ProductInfo{
				Name:         name,
				Manufacturer: manufacturer,
				TestNumber:   testNumber,
				TestedAt:     time.Now(),
			}
			return runExport(info, values, computed, format, outPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Report format: csv or html")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&manufacturer, "manufacturer", "", "Manufacturer name")
	cmd.Flags().StringVar(&testNumber, "test-number", "", "Assigned test number")

	return cmd
}

func runExport(info render.ProductInfo, values rating.Values, computed rating.Computed, format, outPath string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "csv":
		data, err = render.CSV(info, values, computed)
	case "html":
		data, err = render.HTML(info, values, computed)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
