package core

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger   = zerolog.Nop()
	loggerMu sync.RWMutex
)

// SetLogger installs the logger sources use for per-release warnings, such
// as version strings that fail to parse. The default discards everything.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// Logger returns the logger installed with SetLogger.
func Logger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
