// Package logutil provides the loggers used across the module.
//
// All loggers share one output, which discards everything until SetOutput is
// called. This keeps library code quiet by default while letting a host
// program (or a test) turn logging on in one place.
package logutil

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	out   = &switchWriter{w: io.Discard}
	level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	root  = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(out), level))
)

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	// Timestamps make output of tests and transcripts unstable.
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	return cfg
}

// GetLogger returns a logger with the given name. It is intended to be called
// once per package and stored in a package-level variable.
func GetLogger(name string) *zap.SugaredLogger {
	return root.Named(name).Sugar()
}

// SetOutput redirects the output of all loggers, including those that have
// already been created.
func SetOutput(w io.Writer) {
	out.set(w, false)
}

// SetOutputFile redirects the output of all loggers to the named file,
// appending to it. An empty name discards the output. The previous file set
// by SetOutputFile, if any, is closed.
func SetOutputFile(name string) error {
	if name == "" {
		out.set(io.Discard, false)
		return nil
	}
	file, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	out.set(file, true)
	return nil
}

// SetLevel sets the minimum level of entries that get written.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
	// Whether w was opened by SetOutputFile.
	owned bool
}

func (sw *switchWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

func (sw *switchWriter) set(w io.Writer, owned bool) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	if f, ok := sw.w.(*os.File); ok && sw.owned {
		f.Close()
	}
	sw.w, sw.owned = w, owned
}
