package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/market-calendar/internal/calendar"
	"github.com/username/market-calendar/internal/export"
	"github.com/username/market-calendar/pkg/dateutil"
)

func exportCmd() *cobra.Command {
	var year, count int
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write holidays, closures and early closes to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}
			if format == "" {
				format = cfg.Export.Format
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			if year == 0 {
				year = a.calendar.Now().Year()
			}

			rows, err := export.Collect(a.calendar, year, count)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return fmt.Errorf("failed to create output path: %w", err)
				}
				f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := export.Write(w, format, rows); err != nil {
				return err
			}

			logger.Info("Calendar exported",
				zap.Int("from_year", year),
				zap.Int("years", count),
				zap.Int("rows", len(rows)),
				zap.String("format", format),
				zap.String("out", outPath))

			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "First year (default current year)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of years")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, csv or json (default from config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func verifyCmd() *cobra.Command {
	var filePath, from, to string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare a published calendar file against the computed calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("--file is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			fileCal := calendar.NewFileCalendar(filePath, logger)
			if err := fileCal.Load(); err != nil {
				return err
			}

			years := fileCal.Years()
			if len(years) == 0 {
				return fmt.Errorf("calendar file %s lists no days", filePath)
			}

			start := dateutil.NewDate(years[0], 1, 1)
			end := dateutil.NewDate(years[len(years)-1], 12, 31)
			if from != "" {
				t, err := dateutil.ParseDate(from)
				if err != nil {
					return err
				}
				start = dateutil.DateOf(t)
			}
			if to != "" {
				t, err := dateutil.ParseDate(to)
				if err != nil {
					return err
				}
				end = dateutil.DateOf(t)
			}

			mismatches, err := calendar.Compare(a.calendar, fileCal, start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(mismatches) == 0 {
				fmt.Fprintf(out, "✅ %s agrees with the computed calendar from %s to %s\n", filePath, start, end)
				return nil
			}

			for _, m := range mismatches {
				fmt.Fprintf(out, "❌ %s\n", m)
			}
			logger.Warn("Calendar file disagrees with computed calendar",
				zap.String("file", filePath),
				zap.Int("mismatches", len(mismatches)))

			return fmt.Errorf("%d mismatching day(s)", len(mismatches))
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Calendar file to verify")
	cmd.Flags().StringVar(&from, "from", "", "First date (default January 1 of the first listed year)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (default December 31 of the last listed year)")

	return cmd
}
