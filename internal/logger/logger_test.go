package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_SilentWhenNotVerbose(t *testing.T) {
	buf := captureLogs(t, false)

	Debug("loading %s", "profileImage")
	Info("ready")
	Warn("swallowed")

	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWhenVerbose(t *testing.T) {
	buf := captureLogs(t, true)

	Debug("loading %s", "profileImage")
	Warn("read failed: %v", "disk")

	assert.Contains(t, buf.String(), "[DEBUG] loading profileImage\n")
	assert.Contains(t, buf.String(), "[WARN] read failed: disk\n")
}

func TestError_AlwaysPrints(t *testing.T) {
	buf := captureLogs(t, false)

	Error("write failed")

	assert.Equal(t, "[ERROR] write failed\n", buf.String())
}

func TestIsVerbose(t *testing.T) {
	captureLogs(t, true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestLog_ConcurrentLinesStayWhole(t *testing.T) {
	buf := captureLogs(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Info("write %02d done", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Regexp(t, `^\[INFO\] write \d\d done$`, line)
	}
}
