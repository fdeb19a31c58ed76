package level_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deframe/deframe/level"
)

func TestStringLabels(t *testing.T) {
	assert.Equal(t, "TRACE", level.Trace.String())
	assert.Equal(t, "DEBUG", level.Debug.String())
	assert.Equal(t, "INFO", level.Info.String())
	assert.Equal(t, "WARN", level.Warn.String())
	assert.Equal(t, "ERROR", level.Error.String())
}

func TestColorizeUncoloredIsByteStable(t *testing.T) {
	for _, l := range []level.Level{level.Trace, level.Debug, level.Info, level.Warn, level.Error} {
		assert.Equal(t, l.String(), l.Colorize(false))
	}
}

func TestColorizeColoredWrapsInSGR(t *testing.T) {
	colored := level.Error.Colorize(true)
	assert.NotEqual(t, "ERROR", colored)
	assert.Contains(t, colored, "ERROR")
	assert.Contains(t, colored, "\x1b[")
}

func TestColorizeDebugHasNoStyling(t *testing.T) {
	assert.Equal(t, "DEBUG", level.Debug.Colorize(true))
}
