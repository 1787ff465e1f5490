package logging_test

import (
	"testing"

	"github.com/kleascm/whatstyle-go/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatterIncludesMessageAndFields(t *testing.T) {
	f := &logging.CustomFormatter{Timestamp: false, Caller: false, Colors: false}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Message: "Style evaluated",
		Data:    logrus.Fields{"distance": 4},
		Level:   logrus.InfoLevel,
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Style evaluated")
	assert.Contains(t, string(out), "distance=4")
}

func TestSearchFormatterAddsCandidatePrefix(t *testing.T) {
	f := &logging.SearchFormatter{
		CustomFormatter: logging.CustomFormatter{Timestamp: false, Caller: false, Colors: false},
		ShowConvergence: true,
	}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Message: "Candidate selected",
		Data:    logrus.Fields{"aggregate_distance": 2, "cardinality": 1},
		Level:   logrus.InfoLevel,
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[CANDIDATE]")
	assert.Contains(t, string(out), "aggregate_distance=2")
}

func TestSearchFormatterTruncatesLongFingerprint(t *testing.T) {
	f := &logging.SearchFormatter{CustomFormatter: logging.CustomFormatter{Timestamp: false}}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Message: "Style evaluated",
		Data:    logrus.Fields{"style_fingerprint": "LLVM;AlignTrailingComments=true;BreakBeforeBraces=Attach;ColumnLimit=80"},
		Level:   logrus.InfoLevel,
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "...")
}
