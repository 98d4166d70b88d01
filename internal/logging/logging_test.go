package logging_test

import (
	"testing"

	"github.com/on-the-ground/action_object_go/config"
	"github.com/on-the-ground/action_object_go/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	logger, err := logging.New(config.Log{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	logger, err = logging.New(config.Log{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(config.Log{Level: "loud"})
	assert.Error(t, err)
}

func TestNewTest_Debug(t *testing.T) {
	assert.True(t, logging.NewTest().Core().Enabled(zap.DebugLevel))
}
