package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger for debug messages
var (
	isVerbose = false
	logFile   *os.File
	logger    = log.NewWithOptions(io.Discard, log.Options{Prefix: "kraban"})
)

// Log prints debug messages to the log file if verbose mode is enabled
func Log(text string, args ...interface{}) {
	if isVerbose && logFile != nil {
		logger.Debugf(text, args...)
	}
}

// Logger returns the structured logger. It discards everything unless
// verbose logging was enabled with InitLogger.
func Logger() *log.Logger {
	return logger
}

// InitLogger initializes the logging system
func InitLogger(verbose bool) {
	isVerbose = verbose

	if verbose {
		// Create log filename with current date
		now := time.Now()
		logFileName := filepath.Join(os.TempDir(), fmt.Sprintf("kraban_%s.log", now.Format("2006-01-02")))

		var err error
		logFile, err = os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Printf("Error creating log file: %v\n", err)
			return
		}

		logger = log.NewWithOptions(logFile, log.Options{
			Level:           log.DebugLevel,
			Formatter:       log.LogfmtFormatter,
			ReportTimestamp: true,
			Prefix:          "kraban",
		})

		Log("Verbose logging enabled")
	}
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger.SetOutput(io.Discard)
}
