// Package logger builds the zerolog loggers used across the module. Library packages take a
// zerolog.Logger option and default to zerolog.Nop(); only the binary constructs real ones.
package logger

import (
	"io"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/spf13/viper"

	"github.com/dora-network/series-convergence/errors"
)

const (
	ServiceName = "convergence"
	EnvPrefix   = "CONVERGENCE"
)

var (
	global atomic.Pointer[zerolog.Logger] // global, shared logger.
	once   sync.Once                      // guards global.

	mu      sync.Mutex
	files   = map[string]*os.File{}
	closers []io.Closer
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

// openFile returns the shared handle for path, opening it for appending on first use.
func openFile(path string) (*os.File, error) {
	mu.Lock()
	defer mu.Unlock()
	if f, ok := files[path]; ok {
		return f, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigurationErr, err, "open log file "+path)
	}
	files[path] = f
	return f, nil
}

func writer(file string, console bool) (io.Writer, error) {
	var w io.Writer = os.Stderr
	if console {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	if file == "" {
		return w, nil
	}
	f, err := openFile(file)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(f, w), nil
}

func build(level string, w io.Writer) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return zerolog.Nop(), errors.Wrap(errors.ConfigurationErr, err, "log level")
		}
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("instance_id", must(uuid.NewV7()).String()).
		Str("service", ServiceName).
		Logger(), nil
}

// New returns a logger writing to stderr and, when file is not empty, appending to file.
// console switches stderr output to zerolog's human readable format.
func New(level, file string, console bool) (zerolog.Logger, error) {
	w, err := writer(file, console)
	if err != nil {
		return zerolog.Nop(), err
	}
	return build(level, w)
}

// NewThreadSafeLogger is New with writes going through a diode, so concurrent callers never
// block on the sink. Messages are dropped rather than stalling when the buffer is full.
// Close flushes the buffer.
func NewThreadSafeLogger(level, file string, console bool) (zerolog.Logger, error) {
	w, err := writer(file, console)
	if err != nil {
		return zerolog.Nop(), err
	}
	const size, pollInterval = 1024, 10 * time.Millisecond
	d := diode.NewWriter(w, size, pollInterval, func(missed int) {
		log.Printf("diode: dropped %d log messages", missed)
	})
	mu.Lock()
	closers = append(closers, d)
	mu.Unlock()
	return build(level, d)
}

// Close flushes every thread-safe logger and closes every log file opened by this package.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	closers = nil
	for path, f := range files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(files, path)
	}
	return first
}

// Settings selects the level and sinks of a logger.
type Settings struct {
	Level   string
	File    string
	Console bool
}

// SettingsFromEnv reads CONVERGENCE_LOG_LEVEL, CONVERGENCE_LOG_FILE and CONVERGENCE_LOG_CONSOLE.
func SettingsFromEnv() Settings {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.console", false)
	return Settings{
		Level:   v.GetString("log.level"),
		File:    v.GetString("log.file"),
		Console: v.GetBool("log.console"),
	}
}

func initLogger() {
	once.Do(func() {
		if global.Load() != nil {
			return
		}
		env := SettingsFromEnv()

		logger, err := NewThreadSafeLogger(env.Level, env.File, env.Console)
		if err != nil {
			// fall back to stderr at info so the program can still report what went wrong.
			logger = must(NewThreadSafeLogger("", "", env.Console))
			defer logger.Warn().Err(err).Msg("log file is not being used, check CONVERGENCE_LOG_FILE and CONVERGENCE_LOG_LEVEL")
		}

		dbglogger := logger.With().
			Int("gomaxprocs", runtime.GOMAXPROCS(0)).
			Str("goarch", runtime.GOARCH).
			Str("goos", runtime.GOOS).
			Logger()
		if info, ok := debug.ReadBuildInfo(); ok {
			dbglogger.Debug().Str("go", info.GoVersion).Str("module", info.Main.Version).Msg("buildinfo")
		}
		dbglogger.Debug().Msg("logger init")
		global.CompareAndSwap(nil, &logger)
	})
}

// Global returns the global logger. Unless SetGlobal ran first, it is built once from
// SettingsFromEnv. It is safe to call from multiple goroutines.
func Global() *zerolog.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	initLogger()
	return global.Load()
}

// SetGlobal replaces the global logger. Called before Global, it stops the environment
// logger from ever being built.
func SetGlobal(logger zerolog.Logger) {
	global.Store(&logger)
}

// Add fields to the global logger, thread-safe. Avoid this where possible, but sometimes it's handy.
func AddFieldsToGlobal(fields map[string]any) {
	for {
		old := Global()
		newentry := old.With()
		for k, v := range fields {
			newentry = newentry.Any(k, v)
		}
		updated := newentry.Logger()

		if global.CompareAndSwap(old, &updated) {
			return
		}
	}
}
