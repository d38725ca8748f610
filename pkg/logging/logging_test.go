package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/implx/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
		{"negative is warn", -1, zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := t.TempDir()
			t.Setenv(paths.EnvStateDir, stateDir)

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(filepath.Join(stateDir, paths.LogFileName))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLogFileCreatesParents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "a", "b", "implx.log")

	f, err := openLogFile(logPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = os.Stat(logPath)
	assert.NoError(t, err)
}

func TestSetupWithOptions(t *testing.T) {
	old := log.Logger
	defer func() { log.Logger = old }()

	t.Run("console only", func(t *testing.T) {
		var console bytes.Buffer
		closer := Setup(Options{Verbosity: 1, Console: &console, NoColor: true, LogFile: NoFile})
		defer func() { _ = closer.Close() }()

		log.Info().Msg("visible")
		log.Debug().Msg("hidden")

		assert.Contains(t, console.String(), "visible")
		assert.NotContains(t, console.String(), "hidden")
		assert.NotContains(t, console.String(), "\x1b[")
	})

	t.Run("explicit log file gets json", func(t *testing.T) {
		var console bytes.Buffer
		logPath := filepath.Join(t.TempDir(), "run.log")
		closer := Setup(Options{Verbosity: 0, Console: &console, LogFile: logPath})

		log.Warn().Str("trait", "core::ops::BitXor").Msg("slot overwritten")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"trait":"core::ops::BitXor"`)
		assert.Contains(t, string(data), `"level":"warn"`)
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	old := log.Logger
	defer func() { log.Logger = old }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("handoff")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"handoff"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestLogCommandAndOperation(t *testing.T) {
	var buf bytes.Buffer
	old := log.Logger
	defer func() { log.Logger = old }()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	LogCommand("load", []string{"fragments/"})
	done := LogOperationStart(log.Logger, "session.run")
	done()

	out := buf.String()
	assert.Contains(t, out, "Executing command")
	assert.Contains(t, out, "fragments/")
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "session.run")
}
