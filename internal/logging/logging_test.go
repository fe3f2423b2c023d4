package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	logger, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
	})
}

func TestInit(t *testing.T) {
	type expected struct {
		level    zerolog.Level
		contains []string
		err      string
	}

	tests := []struct {
		name     string
		input    Config
		expected expected
	}{
		{
			name:  "json at debug",
			input: Config{Level: "debug", Format: "json"},
			expected: expected{
				level:    zerolog.DebugLevel,
				contains: []string{`"level":"info"`, `"message":"hello"`, `"flight":"AA123"`},
			},
		},
		{
			name:  "text defaults to info",
			input: Config{},
			expected: expected{
				level:    zerolog.InfoLevel,
				contains: []string{"hello", "AA123"},
			},
		},
		{
			name:     "caller",
			input:    Config{Format: "json", WithCaller: true},
			expected: expected{level: zerolog.InfoLevel, contains: []string{`"caller":`}},
		},
		{
			name:     "bad level",
			input:    Config{Level: "loud"},
			expected: expected{err: `invalid log level "loud"`},
		},
		{
			name:     "bad format",
			input:    Config{Format: "xml"},
			expected: expected{err: `invalid log format "xml"`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			restoreGlobals(t)
			var buf bytes.Buffer
			tc.input.Out = &buf

			err := Init(tc.input)
			if tc.expected.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expected.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.level, zerolog.GlobalLevel())

			log.Info().Str("flight", "AA123").Msg("hello")
			for _, s := range tc.expected.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestInit_File(t *testing.T) {
	restoreGlobals(t)
	path := filepath.Join(t.TempDir(), "flightdesk.log")

	require.NoError(t, Init(Config{Format: "json", File: path, Out: &bytes.Buffer{}}))
	log.Warn().Msg("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
