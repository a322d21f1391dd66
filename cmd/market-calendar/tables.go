package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/username/market-calendar/internal/calendar"
	"github.com/username/market-calendar/pkg/dateutil"
)

func holidaysCmd() *cobra.Command {
	var year, count int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List exchange holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			if year == 0 {
				year = a.calendar.Now().Year()
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Date", "Weekday", "Holiday"})
			table.SetAutoWrapText(false)

			for y := year; y < year+count; y++ {
				holidays := a.calendar.GetHolidays(y)
				for _, d := range holidays.Dates() {
					name, _ := holidays.Name(d)
					table.Append([]string{d.String(), d.Weekday().String(), name})
				}
			}

			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "First year (default current year)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of years")

	return cmd
}

func monthCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show every day of a month with its session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			now := a.calendar.Now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12, got %d", month)
			}

			monthInfo, err := a.calendar.GetMonthInfo(year, time.Month(month))
			if err != nil {
				return fmt.Errorf("failed to get month info: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📅 %s %d\n", time.Month(month), year)

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Date", "Weekday", "Type", "Close", "Note"})
			table.SetAutoWrapText(false)

			for _, day := range monthInfo.Days {
				closeTime := ""
				if day.IsTradingDay {
					closeTime = dateutil.FormatClock(day.CloseTime)
				}
				table.Append([]string{
					day.Date.String(),
					day.Date.Weekday().String(),
					day.Type.String(),
					closeTime,
					day.Note,
				})
			}

			table.SetFooter([]string{
				"",
				"",
				fmt.Sprintf("%d trading", monthInfo.TradingDays),
				fmt.Sprintf("%d early", monthInfo.EarlyCloses),
				fmt.Sprintf("%d holidays, %d weekends", monthInfo.Holidays, monthInfo.Weekends),
			})
			table.Render()

			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default current year)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default current month)")

	return cmd
}

func closuresCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "closures",
		Short: "List unscheduled full-day closures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			closures := calendar.ExtraCloseDates()

			dates := make([]dateutil.CivilDate, 0, len(closures))
			for d := range closures {
				if year == 0 || d.Year == year {
					dates = append(dates, d)
				}
			}
			sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Date", "Weekday", "Reason"})
			table.SetAutoWrapText(false)
			for _, d := range dates {
				table.Append([]string{d.String(), d.Weekday().String(), closures[d]})
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Only this year (default all)")

	return cmd
}
