package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsFilterRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WarnLevel, &buf)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")
	logger.Errorf("also %s", "visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf)

	child := logger.With("system", "demo")
	child.Info("hello")

	out := buf.String()
	require.Contains(t, out, `"system"`)
	assert.Contains(t, out, `"demo"`)
	assert.Contains(t, out, "hello")
}

func TestFormattedVariants(t *testing.T) {
	var buf bytes.Buffer
	logger := New(DebugLevel, &buf)

	logger.Debugf("n=%d", 1)
	logger.Infof("n=%d", 2)
	logger.Warnf("n=%d", 3)

	out := buf.String()
	for _, want := range []string{"n=1", "n=2", "n=3"} {
		assert.Contains(t, out, want)
	}
}
