package logging_test

import (
	"os"
	"testing"
	"time"

	"github.com/kleascm/whatstyle-go/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerCreationDefaultsAndCustomConfig(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer logger.Close()
	defer os.RemoveAll("./logs")

	config := &logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: "./test_logs",
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Timestamp: true,
		Caller:    true,
		Colors:    false,
	}
	defer os.RemoveAll("./test_logs")

	logger2, err := logging.NewLogger(config)
	require.NoError(t, err)
	require.NotNil(t, logger2)
	defer logger2.Close()
}

func TestLogFormatSearchIsValid(t *testing.T) {
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatSearch,
		OutputDir: "./test_logs_search",
		Timestamp: false,
		Caller:    false,
		Colors:    false,
	})
	require.NoError(t, err)
	defer logger.Close()
	defer os.RemoveAll("./test_logs_search")

	logger.LogEvaluation("LLVM;IndentWidth=2", "a.go", 3, nil)
	logger.LogCandidate("B", "LLVM;IndentWidth=2", 3, 1, nil)
	logger.LogConvergence("B", true, 4, nil)
	logger.LogCacheStats(10, 2, nil)
}

func TestLoggerInfofWarnfSatisfySearchLoggerInterface(t *testing.T) {
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: "./test_logs_ifc",
		Timestamp: false,
	})
	require.NoError(t, err)
	defer logger.Close()
	defer os.RemoveAll("./test_logs_ifc")

	var searchLogger interface {
		Infof(format string, args ...interface{})
		Warnf(format string, args ...interface{})
	} = logger

	searchLogger.Infof("phase A selected baseline %q at distance %d", "LLVM", 0)
	searchLogger.Warnf("phase B: %v", time.Second)

	assert.NotNil(t, logger.GetLogger())
}
