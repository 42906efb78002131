package vecfilter

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecfilter/strategy"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestLoggerWithK(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf).WithK(7)

	log.LogSearch(context.Background(), 3, 21, nil)

	out := buf.String()
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, "k=7")
	assert.Contains(t, out, "results=3")
	assert.Contains(t, out, "vectors_evaluated=21")
}

func TestLoggerLogStrategy(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	log.LogStrategy(context.Background(), strategy.NewPreFilter(), 0.9)

	out := buf.String()
	assert.Contains(t, out, "strategy resolved")
	assert.Contains(t, out, "strategy=pre_filter")
}

func TestSearchLogsNeighborCount(t *testing.T) {
	var buf bytes.Buffer
	s := newFixture(t, WithLogger(newBufferLogger(&buf)))

	_, err := s.Search(context.Background(), []float32{0, 0}, 3,
		WithFilterText(`popular = true`))
	require.NoError(t, err)

	// Every log line of a search carries the requested k.
	out := buf.String()
	assert.Contains(t, out, "strategy resolved")
	assert.Contains(t, out, "search completed")
	assert.Contains(t, out, "k=3")
}
