package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/logger"
)

func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l1, err := logger.New("debug", path, false)
	require.NoError(t, err)
	l2, err := logger.NewThreadSafeLogger("debug", path, false)
	require.NoError(t, err)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		l1.Info().Msg("test1")
		wg.Done()
	}()

	go func() {
		l2.Info().Msg("test2")
		// Need to give it some time to write to the file
		time.Sleep(20 * time.Millisecond)
		wg.Done()
	}()

	wg.Wait()

	require.NoError(t, logger.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Contains(t, string(contents), "test1")
	require.Contains(t, string(contents), "test2")
	require.Contains(t, string(contents), `"service":"convergence"`)
	require.Contains(t, string(contents), `"instance_id"`)
}

func TestLoggerErrors(t *testing.T) {
	_, err := logger.New("chatty", "", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ConfigurationErr))

	_, err = logger.New("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ConfigurationErr))
}

func TestSettingsFromEnv(t *testing.T) {
	assert.Equal(t, logger.Settings{Level: "info"}, logger.SettingsFromEnv())

	t.Setenv("CONVERGENCE_LOG_LEVEL", "debug")
	t.Setenv("CONVERGENCE_LOG_FILE", "/tmp/convergence.log")
	t.Setenv("CONVERGENCE_LOG_CONSOLE", "true")
	assert.Equal(t,
		logger.Settings{Level: "debug", File: "/tmp/convergence.log", Console: true},
		logger.SettingsFromEnv(),
	)
}

// Runs before TestGlobal: once the environment logger is built, SetGlobal can no longer
// show whether it was skipped.
func TestSetGlobalSkipsEnvLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.log")
	t.Setenv("CONVERGENCE_LOG_FILE", path)

	var buf bytes.Buffer
	logger.SetGlobal(zerolog.New(&buf))
	logger.Global().Info().Msg("through the injected logger")

	assert.Contains(t, buf.String(), "through the injected logger")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "environment log file should not be opened")
}

func TestGlobal(t *testing.T) {
	l := logger.Global()
	require.NotNil(t, l)
	logger.AddFieldsToGlobal(map[string]any{"run": "test"})
	assert.NotSame(t, l, logger.Global())
}
