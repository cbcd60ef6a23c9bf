package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("debug")
	require.NoError(t, err)
	require.True(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn")
	require.NoError(t, err)
	require.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Desugar().Core().Enabled(zapcore.ErrorLevel))

	_, err = New("loud")
	require.Error(t, err)
}
