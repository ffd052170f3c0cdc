package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const prefix = "COUNTRY_EXPLORER: "

var (
	once   sync.Once
	mu     sync.RWMutex
	logger *log.Logger
	debug  bool
)

// Init sets up the process-wide logger writing to stdout. Calling it more
// than once is a no-op.
func Init() {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if logger == nil {
			logger = log.New(os.Stdout, prefix, log.LstdFlags|log.Lshortfile)
		}
		debug = os.Getenv("LOG_DEBUG") != ""
	})
}

// SetOutput redirects all log lines to w.
func SetOutput(w io.Writer) {
	Init()
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, log.LstdFlags|log.Lshortfile)
}

// SetDebug toggles Debug output.
func SetDebug(enabled bool) {
	Init()
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
}

func Info(message string, v ...interface{}) {
	output("INFO: "+message, v...)
}

func Warn(message string, v ...interface{}) {
	output("WARN: "+message, v...)
}

func Error(message string, v ...interface{}) {
	output("ERROR: "+message, v...)
}

func Debug(message string, v ...interface{}) {
	mu.RLock()
	enabled := debug
	mu.RUnlock()
	if !enabled {
		return
	}
	output("DEBUG: "+message, v...)
}

func output(message string, v ...interface{}) {
	Init()
	mu.RLock()
	l := logger
	mu.RUnlock()
	// depth 3: output -> Info/Warn/... -> caller
	_ = l.Output(3, sprintf(message, v...))
}

func sprintf(message string, v ...interface{}) string {
	if len(v) == 0 {
		return message
	}
	return fmt.Sprintf(message, v...)
}
