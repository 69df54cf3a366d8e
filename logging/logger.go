package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
//
// Structured logs always go to stderr: stdout is reserved for the report so
// it can be piped or scripted.
func NewLogger(component string, cfg Config) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := newUnregistered(component, cfg, os.Stderr)
	loggers[component] = logger
	return logger
}

// NewLoggerWithOutput builds a logger writing to the given sink without
// registering it in the singleton map. Tests use this to capture output.
func NewLoggerWithOutput(component string, cfg Config, out io.Writer) *logrus.Entry {
	return newUnregistered(component, cfg, out)
}

func newUnregistered(component string, cfg Config, out io.Writer) *logrus.Entry {
	logger := logrus.New()

	// Configure Level
	levelStr := DefaultLevel
	if env := os.Getenv("SWEEP_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("SWEEP_LOG_CALLER") == "true" || cfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		fmtCfg := cfg.Format
		logger.SetFormatter(&TextFormatter{
			Config:   fmtCfg,
			Colorize: isTerminal(out),
		})
	}

	logger.SetOutput(out)

	return logger.WithField("component", component)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
