package tooni

import (
	"log"
	"os"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   = log.New(os.Stderr, "[tooni] ", log.LstdFlags)
)

// SetLogger replaces the package logger. Loaders log from their own
// goroutines, so the swap is guarded.
func SetLogger(l *log.Logger) {
	if l == nil {
		panic("tooni: nil logger")
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Logger returns the package logger.
func Logger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func logf(format string, args ...any) {
	Logger().Printf(format, args...)
}
