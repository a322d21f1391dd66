package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/market-calendar/internal/calendar"
	"github.com/username/market-calendar/internal/config"
	"github.com/username/market-calendar/internal/marketclock"
)

var (
	configPath string
	logger     *zap.Logger
	cfg        *config.Config

	// replaced in tests
	systemClock marketclock.Clock = marketclock.SystemClock{}
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "market-calendar",
		Short:         "US equity market calendar",
		Long:          "Trading days, holidays, early closes and session state for US equity markets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger()
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
					logger.Warn("Failed to open log file, logging to console",
						zap.String("file", cfg.Log.File),
						zap.Error(err))
				}
			} else {
				initLogger()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(
		statusCmd(),
		checkCmd(),
		holidaysCmd(),
		monthCmd(),
		closuresCmd(),
		nextCmd(),
		prevCmd(),
		exportCmd(),
		verifyCmd(),
	)

	return rootCmd
}

// app holds the components every command works with
type app struct {
	clock    *marketclock.MarketClock
	calendar *calendar.MarketCalendar
	display  *time.Location
}

func newApp() (*app, error) {
	clock, err := marketclock.New(systemClock, cfg.Market.Timezone)
	if err != nil {
		return nil, err
	}

	display, err := cfg.Market.DisplayLocation()
	if err != nil {
		return nil, err
	}

	cal := calendar.NewMarketCalendar(calendar.NewHolidayCache(logger), clock, logger)
	if cfg.Calendar.PrewarmEnabled() {
		cal.Prewarm(cfg.Calendar.PrewarmFrom, cfg.Calendar.PrewarmYears)
	}

	logger.Debug("Market calendar ready",
		zap.String("timezone", clock.Location().String()),
		zap.String("display_timezone", display.String()))

	return &app{clock: clock, calendar: cal, display: display}, nil
}

// displayTime renders a market civil time in the display zone
func (a *app) displayTime(t time.Time) string {
	return a.clock.FromMarket(t, a.display).Format("2006-01-02 15:04 MST")
}

func initLogger() {
	level := zapcore.InfoLevel
	if cfg != nil {
		if configured, err := cfg.Log.ZapLevel(); err == nil {
			level = configured
		}
	}

	var err error
	logger, err = newConsoleLogger(level)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func newConsoleLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build()
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	// lumberjack opens the file lazily, so check it is writable up front
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	f.Close()

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
