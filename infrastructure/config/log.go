package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/infrastructure/logger"
)

const (
	defaultLogLevel       = "warn"
	defaultLogFilename    = "tposd.log"
	defaultErrLogFilename = "tposd_err.log"
)

// LogFlags holds the logging configuration shared by the command line tools.
type LogFlags struct {
	LogLevel string `long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir   string `long:"logdir" description:"Directory to log output"`
}

// InitLogs starts the logging backend. Log lines go to stderr, so they
// never mix with a tool's output, and to rotated files under LogDir when it
// is set.
func (logFlags *LogFlags) InitLogs() error {
	if logFlags.LogLevel == "" {
		logFlags.LogLevel = defaultLogLevel
	}
	if err := logger.ParseAndSetLogLevels(logFlags.LogLevel); err != nil {
		return err
	}

	var logFile, errLogFile string
	if logFlags.LogDir != "" {
		logFile = filepath.Join(logFlags.LogDir, defaultLogFilename)
		errLogFile = filepath.Join(logFlags.LogDir, defaultErrLogFilename)
	}
	return errors.Wrap(logger.InitLog(os.Stderr, logFile, errLogFile), "failed to start logging")
}
