package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/market-calendar/internal/calendar"
	"github.com/username/market-calendar/pkg/dateutil"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the market is open right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			cal := a.calendar
			out := cmd.OutOrStdout()

			now := cal.Now()
			info, err := cal.GetDayInfo(now)
			if err != nil {
				return fmt.Errorf("failed to get day info: %w", err)
			}

			logger.Info("Status requested",
				zap.Time("market_now", now),
				zap.String("day_type", info.Type.String()))

			fmt.Fprintf(out, "🕒 Now:      %s (%s)\n", now.Format("2006-01-02 15:04 MST"), now.Weekday())
			printDayInfo(out, info)

			if cal.IsMarketOpenNow() {
				fmt.Fprintf(out, "✅ Market is open, closes in %s\n", formatDuration(cal.TimeLeftToClose()))
			} else {
				fmt.Fprintf(out, "⛔ Market is closed (%s)\n", cal.CheckTimeNow())
				if info.IsTradingDay && cal.TimeLeftToOpen() > 0 {
					fmt.Fprintf(out, "   Opens in %s\n", formatDuration(cal.TimeLeftToOpen()))
				}
			}

			next := cal.NextTradingDay()
			prev := cal.PrevTradingDay()
			fmt.Fprintf(out, "⏭  Next trading day: %s (opens %s)\n", next, a.displayTime(next.Time().Add(calendar.MarketOpenTime)))
			fmt.Fprintf(out, "⏮  Prev trading day: %s\n", prev)

			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	var clock string

	cmd := &cobra.Command{
		Use:   "check <date>",
		Short: "Describe a date, and optionally a time of day, in market time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			cal := a.calendar
			out := cmd.OutOrStdout()

			info, err := cal.GetDayInfo(date)
			if err != nil {
				return fmt.Errorf("failed to get day info: %w", err)
			}
			printDayInfo(out, info)

			if clock == "" {
				return nil
			}

			tod, err := dateutil.ParseClock(clock)
			if err != nil {
				return err
			}
			at := dateutil.StartOfDay(date).Add(tod)
			state := cal.CheckTime(at)
			if !info.IsTradingDay {
				state = calendar.AfterClose
			}
			fmt.Fprintf(out, "🕒 %s market time (%s): %s\n",
				dateutil.FormatClock(tod), a.displayTime(at), state)

			return nil
		},
	}

	cmd.Flags().StringVarP(&clock, "time", "t", "", "Market time of day (HH:MM)")

	return cmd
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next [date]",
		Short: "Print the first trading day after date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			from, err := dateArg(a, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.calendar.NextTradingDayAfter(from))
			return nil
		},
	}
}

func prevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev [date]",
		Short: "Print the last trading day before date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			from, err := dateArg(a, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.calendar.PrevTradingDayBefore(from))
			return nil
		},
	}
}

func dateArg(a *app, args []string) (time.Time, error) {
	if len(args) == 0 {
		return a.calendar.Now(), nil
	}
	return dateutil.ParseDate(args[0])
}

func printDayInfo(out io.Writer, info *calendar.DayInfo) {
	fmt.Fprintf(out, "📅 Date:     %s (%s)\n", info.Date, info.Date.Weekday())
	fmt.Fprintf(out, "   Type:     %s\n", info.Type)
	if info.IsTradingDay {
		fmt.Fprintf(out, "   Session:  %s - %s\n",
			dateutil.FormatClock(calendar.MarketOpenTime), dateutil.FormatClock(info.CloseTime))
	}
	if info.Note != "" {
		fmt.Fprintf(out, "   Note:     %s\n", info.Note)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
