package stderr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestForward_LogsNonEmptyLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	Forward(strings.NewReader("ALSA lib pcm.c: underrun\n\n   \nsecond line\n"), logger)

	out := buf.String()
	assert.Contains(t, out, "ALSA lib pcm.c: underrun")
	assert.Contains(t, out, "second line")
	assert.Equal(t, 2, strings.Count(out, "WARN"))
}

func TestStop_WithoutStartIsNoop(t *testing.T) {
	assert.NotPanics(t, Stop)
}
